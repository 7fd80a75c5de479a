package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store manages artifact storage for a run.
type Store struct {
	RunID   string
	BaseDir string // <root>/runs/<run_id>
}

// New creates a store for a given run ID under root (e.g. .demoprobe).
func New(runID, root string) (*Store, error) {
	base := filepath.Join(root, "runs", runID)
	if err := os.MkdirAll(filepath.Join(base, "endpoints"), 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	return &Store{RunID: runID, BaseDir: base}, nil
}

// WriteResponse saves the raw response body of an endpoint call.
func (s *Store) WriteResponse(endpoint string, body []byte) (string, error) {
	if len(body) == 0 {
		return "", nil
	}
	path := filepath.Join(s.BaseDir, "endpoints", slug(endpoint)+".json")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("writing %s response: %w", endpoint, err)
	}
	return path, nil
}

// WriteResult writes the final result JSON.
func (s *Store) WriteResult(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.BaseDir, "result.json"), data, 0o644)
}

// slug turns "List Pipelines" into "list-pipelines".
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
