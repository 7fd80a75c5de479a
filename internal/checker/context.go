package checker

import (
	"github.com/google/uuid"
)

// RunContext holds per-run identifiers.
type RunContext struct {
	RunID   string
	BaseURL string
	WorkDir string
}

// NewRunContext creates a new run context with a fresh run ID.
func NewRunContext(baseURL, workDir string) *RunContext {
	return &RunContext{
		RunID:   uuid.New().String(),
		BaseURL: baseURL,
		WorkDir: workDir,
	}
}
