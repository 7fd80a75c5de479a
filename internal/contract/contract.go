// Package contract describes which list-endpoint fields the portal's display
// components read, and which of them must be present.
package contract

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stevehiehn/demoprobe/internal/demoapi"
)

//go:embed contract.yaml
var defaultContract []byte

// Contract is the field contract between the API and the portal.
type Contract struct {
	Mappings []Mapping `yaml:"mappings" json:"mappings"`
	Required []Rule    `yaml:"required" json:"required"`
}

// Mapping fills one component field from the first present backend field.
type Mapping struct {
	Field string   `yaml:"field" json:"field"`
	From  []string `yaml:"from" json:"from"`
}

// Rule requires at least one of AnyOf to be present.
type Rule struct {
	Message string   `yaml:"message" json:"message"`
	AnyOf   []string `yaml:"any_of" json:"any_of"`
}

// Parse decodes and validates a contract document.
func Parse(data []byte) (*Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing contract: %w", err)
	}
	for i, m := range c.Mappings {
		if m.Field == "" || len(m.From) == 0 {
			return nil, fmt.Errorf("mapping at index %d needs field and from", i)
		}
		if err := checkFields(m.From); err != nil {
			return nil, fmt.Errorf("mapping %q: %w", m.Field, err)
		}
	}
	for i, r := range c.Required {
		if r.Message == "" || len(r.AnyOf) == 0 {
			return nil, fmt.Errorf("required rule at index %d needs message and any_of", i)
		}
		if err := checkFields(r.AnyOf); err != nil {
			return nil, fmt.Errorf("required rule at index %d: %w", i, err)
		}
	}
	return &c, nil
}

func checkFields(names []string) error {
	for _, name := range names {
		if !demoapi.IsField(name) {
			return fmt.Errorf("unknown field %q (known: %s)", name, strings.Join(demoapi.Fields, ", "))
		}
	}
	return nil
}

// Default returns the built-in contract.
func Default() *Contract {
	c, err := Parse(defaultContract)
	if err != nil {
		panic(err)
	}
	return c
}

// Source renders the precedence chain the way the portal code reads it.
func (m Mapping) Source() string {
	return strings.Join(m.From, " || ")
}

// Resolve returns the component value for p, or false when every backend
// field in the chain is absent.
func (m Mapping) Resolve(p demoapi.PipelineSummary) (string, bool) {
	vals := make([]demoapi.OptString, len(m.From))
	for i, f := range m.From {
		vals[i] = p.Field(f)
	}
	return demoapi.FirstPresent(vals...)
}

// Resolve fills the component field for p. Fields the contract does not map
// keep the built-in precedence.
func (c *Contract) Resolve(field string, p demoapi.PipelineSummary) (string, bool) {
	for _, m := range c.Mappings {
		if m.Field == field {
			return m.Resolve(p)
		}
	}
	return demoapi.DefaultResolve(field, p)
}

// Satisfied reports whether p has at least one of the rule's fields.
func (r Rule) Satisfied(p demoapi.PipelineSummary) bool {
	for _, f := range r.AnyOf {
		if p.Field(f).Set {
			return true
		}
	}
	return false
}
