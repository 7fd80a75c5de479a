package checker

import (
	"github.com/stevehiehn/demoprobe/internal/demoapi"
	checkerrors "github.com/stevehiehn/demoprobe/internal/errors"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// RunResult is the structured output of one check run.
type RunResult struct {
	RunID      string                   `json:"run_id"`
	BaseURL    string                   `json:"base_url"`
	ExitCode   int                      `json:"exit_code"`
	Success    bool                     `json:"success"`
	FatalError string                   `json:"fatal_error,omitempty"`
	Issues     []string                 `json:"issues"`
	Pipelines  int                      `json:"pipelines"`
	Info       *demoapi.EndpointResult  `json:"info,omitempty"`
	List       *demoapi.EndpointResult  `json:"list,omitempty"`
	Execute    *demoapi.EndpointResult  `json:"execute,omitempty"`
	Warnings   []string                 `json:"warnings,omitempty"`
	Errors     []checkerrors.CheckError `json:"errors,omitempty"`
	Artifacts  []string                 `json:"artifacts,omitempty"`
}

// finish derives the exit code. A fatal error always fails the run;
// otherwise any recorded issue does.
func (r *RunResult) finish() *RunResult {
	if r.Issues == nil {
		r.Issues = []string{}
	}
	switch {
	case r.FatalError != "":
		r.ExitCode = ExitFailure
	case len(r.Issues) > 0:
		r.ExitCode = ExitFailure
	default:
		r.ExitCode = ExitOK
	}
	r.Success = r.ExitCode == ExitOK
	return r
}

func (r *RunResult) recordError(err *checkerrors.CheckError) {
	if err != nil {
		r.Errors = append(r.Errors, *err)
	}
}
