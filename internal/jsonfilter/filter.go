// Package jsonfilter applies jq expressions to command output.
package jsonfilter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq expression.
type Filter struct {
	code *gojq.Code
}

// Compile parses a jq expression.
func Compile(expr string) (*Filter, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compiling jq expression: %w", err)
	}
	return &Filter{code: code}, nil
}

// Apply runs the filter over v and returns every emitted value.
// v is round-tripped through JSON so gojq sees plain maps and slices.
func (f *Filter) Apply(v any) ([]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}

	var out []any
	iter := f.code.Run(input)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := val.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// Write encodes each result of Apply on its own line.
func (f *Filter) Write(w io.Writer, v any) error {
	results, err := f.Apply(v)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, r := range results {
		if s, ok := r.(string); ok {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
