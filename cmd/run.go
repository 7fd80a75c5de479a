package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stevehiehn/demoprobe/internal/artifact"
	"github.com/stevehiehn/demoprobe/internal/checker"
	"github.com/stevehiehn/demoprobe/internal/config"
	"github.com/stevehiehn/demoprobe/internal/console"
	"github.com/stevehiehn/demoprobe/internal/contract"
	"github.com/stevehiehn/demoprobe/internal/demoapi"
	"github.com/stevehiehn/demoprobe/internal/jsonfilter"
	"github.com/stevehiehn/demoprobe/internal/telemetry"
)

var contractPath string

// transport is the round tripper used for API calls; nil means the default.
var transport http.RoundTripper

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the integration check (default command)",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVar(&contractPath, "contract", "", "Field contract YAML to check against (default: built-in)")
	}
	rootCmd.AddCommand(runCmd)
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	cfg, err := config.Load(configPath, parseInputs(setValues))
	if err != nil {
		return err
	}
	fc, err := loadContract(contractPath)
	if err != nil {
		return err
	}
	if jqExpr != "" {
		if _, err := jsonfilter.Compile(jqExpr); err != nil {
			return err
		}
	}

	logger := newLogger(cmd.ErrOrStderr())
	progress := cmd.OutOrStdout()
	if structuredOutput() {
		progress = cmd.ErrOrStderr()
	}
	out := console.New(progress, noColor)

	defer func() {
		if r := recover(); r != nil {
			out.Error("Fatal error: %v", r)
			logger.Error("run panicked", slog.Any("panic", r))
			err = &exitError{code: checker.ExitFailure}
		}
	}()

	httpClient := &http.Client{Timeout: cfg.API.Timeout, Transport: transport}
	if cfg.Trace.Enabled {
		shutdown, err := telemetry.InitTracer("demoprobe", cmd.ErrOrStderr(), logger)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("shutting down tracer", slog.String("error", err.Error()))
			}
		}()
		httpClient = telemetry.HTTPClient(httpClient)
	}

	wd, _ := os.Getwd()
	rc := checker.NewRunContext(cfg.API.BaseURL, wd)

	client := demoapi.NewClient(
		demoapi.Endpoints{BaseURL: cfg.API.BaseURL, PathPrefix: cfg.API.PathPrefix},
		demoapi.WithHTTPClient(httpClient),
		demoapi.WithPrinter(out),
		demoapi.WithLogger(logger),
		demoapi.WithExecuteLimit(cfg.Execute.Limit),
		demoapi.WithResolver(fc.Resolve),
	)

	opts := []checker.Option{
		checker.WithContract(fc),
		checker.WithPrinter(out),
		checker.WithLogger(logger),
	}
	if cfg.Artifacts.Enabled {
		dir := cfg.Artifacts.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(rc.WorkDir, dir)
		}
		store, err := artifact.New(rc.RunID, dir)
		if err != nil {
			return err
		}
		opts = append(opts, checker.WithArtifacts(store))
	}

	result := checker.New(client, opts...).Run(cmd.Context(), rc)

	if structuredOutput() {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	}
	if result.ExitCode != checker.ExitOK {
		return &exitError{code: result.ExitCode}
	}
	return nil
}

func loadContract(path string) (*contract.Contract, error) {
	if path == "" {
		return contract.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contract file: %w", err)
	}
	return contract.Parse(data)
}
