package checker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stevehiehn/demoprobe/internal/artifact"
	"github.com/stevehiehn/demoprobe/internal/console"
	"github.com/stevehiehn/demoprobe/internal/contract"
	"github.com/stevehiehn/demoprobe/internal/demoapi"
	checkerrors "github.com/stevehiehn/demoprobe/internal/errors"
)

// API is the subset of the demo client the checker drives.
type API interface {
	FetchInfo(ctx context.Context) *demoapi.EndpointResult
	FetchList(ctx context.Context) *demoapi.ListOutcome
	ExecutePipeline(ctx context.Context, pipelineName string) *demoapi.EndpointResult
}

// Checker runs the info → list → consistency → execute sequence.
type Checker struct {
	api      API
	contract *contract.Contract
	out      console.Printer
	logger   *slog.Logger
	store    *artifact.Store
}

// Option configures a Checker.
type Option func(*Checker)

// WithContract overrides the built-in field contract.
func WithContract(c *contract.Contract) Option {
	return func(ch *Checker) { ch.contract = c }
}

// WithPrinter sets the console output.
func WithPrinter(p console.Printer) Option {
	return func(ch *Checker) { ch.out = p }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(ch *Checker) { ch.logger = l }
}

// WithArtifacts saves raw responses and the final result to store.
func WithArtifacts(s *artifact.Store) Option {
	return func(ch *Checker) { ch.store = s }
}

// New creates a checker driving api.
func New(api API, opts ...Option) *Checker {
	ch := &Checker{
		api:      api,
		contract: contract.Default(),
		out:      console.Discard(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Run executes the check sequentially and returns its result. Only the info
// and list calls can abort the run; the execute call degrades to a warning.
func (ch *Checker) Run(ctx context.Context, rc *RunContext) *RunResult {
	result := &RunResult{RunID: rc.RunID, BaseURL: rc.BaseURL}
	defer ch.persist(result)

	ch.out.Banner("VitePress Portal - Demo Plugin Integration Test")
	ch.out.Info("API Base URL: %s", rc.BaseURL)

	result.Info = ch.api.FetchInfo(ctx)
	ch.saveResponse(result, result.Info)
	if aborts(result.Info.Success, result.Info.Err) {
		ch.out.Error("Plugin info endpoint failed - aborting further tests")
		return ch.abort(result, result.Info, "plugin info endpoint failed")
	}

	list := ch.api.FetchList(ctx)
	result.List = list.Result
	ch.saveResponse(result, list.Result)
	if aborts(list.Success, list.Result.Err) {
		ch.out.Error("List pipelines endpoint failed - aborting further tests")
		return ch.abort(result, list.Result, "list pipelines endpoint failed")
	}
	result.Pipelines = len(list.Pipelines)

	result.Issues = ch.verify(list.Pipelines)
	for _, issue := range result.Issues {
		result.recordError(checkerrors.NewContractViolation(issue))
	}

	if len(list.Pipelines) > 0 {
		ch.out.Heading("Summary")
		ch.out.Line("  Total Pipelines Available: %d", len(list.Pipelines))
		ch.out.Line("  Consistency Issues: %d", len(result.Issues))

		id, ok := list.Pipelines[0].ID()
		if !ok {
			ch.warn(result, "First pipeline has no pipeline_name or name - skipping execution test")
		} else {
			ch.out.Note("  Testing execution with first available pipeline...")
			result.Execute = ch.api.ExecutePipeline(ctx, id)
			ch.saveResponse(result, result.Execute)
			if result.Execute.Success {
				ch.out.Success("All integration tests passed!")
			} else {
				result.recordError(result.Execute.Err)
				ch.warn(result, "Execution test failed, but list/info endpoints work")
			}
		}
	} else {
		ch.warn(result, "No pipelines available for execution test")
	}

	ch.out.Heading("Test Complete")
	return result.finish()
}

// aborts reports whether a failed mandatory call ends the run. Failures
// without a classified error always do.
func aborts(success bool, err *checkerrors.CheckError) bool {
	return !success && (err == nil || err.Fatal())
}

func (ch *Checker) abort(result *RunResult, res *demoapi.EndpointResult, msg string) *RunResult {
	result.FatalError = msg
	if res.Err != nil {
		result.FatalError = fmt.Sprintf("%s: %s", msg, res.Err.Error())
		result.recordError(res.Err)
	}
	ch.logger.Error("aborting run", slog.String("run_id", result.RunID), slog.String("reason", result.FatalError))
	return result.finish()
}

func (ch *Checker) warn(result *RunResult, msg string) {
	result.Warnings = append(result.Warnings, msg)
	ch.out.Warning("%s", msg)
}

// verify prints the contract's field mappings and the issues found.
func (ch *Checker) verify(pipelines []demoapi.PipelineSummary) []string {
	ch.out.Heading("Verifying Response Format Consistency")
	issues := VerifyWith(ch.contract, pipelines)

	ch.out.Line("  Checking VitePress component expectations...")
	ch.out.Line("  Component field mappings:")
	for _, m := range ch.contract.Mappings {
		ch.out.Detail("    %s -> %s", m.Field, m.Source())
	}

	if len(issues) == 0 {
		ch.out.Success("Response format is consistent with component expectations")
	} else {
		ch.out.Warning("Found %d consistency issues:", len(issues))
		for _, issue := range issues {
			ch.out.Error("  - %s", issue)
		}
	}
	return issues
}

func (ch *Checker) saveResponse(result *RunResult, res *demoapi.EndpointResult) {
	if ch.store == nil || res == nil {
		return
	}
	path, err := ch.store.WriteResponse(res.Name, res.Data)
	if err != nil {
		ch.logger.Warn("saving response", slog.String("endpoint", res.Name), slog.String("error", err.Error()))
		return
	}
	if path != "" {
		result.Artifacts = append(result.Artifacts, path)
	}
}

func (ch *Checker) persist(result *RunResult) {
	if ch.store == nil {
		return
	}
	if err := ch.store.WriteResult(result); err != nil {
		ch.logger.Warn("saving result", slog.String("error", err.Error()))
	}
}
