package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/stevehiehn/demoprobe/internal/jsonfilter"
)

// parseInputs converts ["key=value", ...] to a map.
func parseInputs(raw []string) map[string]string {
	m := map[string]string{}
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			m[parts[0]] = parts[1]
		}
	}
	return m
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// structuredOutput reports whether stdout is reserved for JSON.
func structuredOutput() bool {
	return jsonOutput || jqExpr != ""
}

func writeJSON(w io.Writer, v any) error {
	if jqExpr != "" {
		f, err := jsonfilter.Compile(jqExpr)
		if err != nil {
			return err
		}
		return f.Write(w, v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
