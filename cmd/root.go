package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	jqExpr     string
	configPath string
	setValues  []string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "demoprobe",
	Short: "Smoke-check the demo plugin API behind the docs portal",
	Long: "demoprobe calls the demo plugin's info, list and execute endpoints in order,\n" +
		"checks the list response against the fields the portal components read,\n" +
		"and exits non-zero when an endpoint is down or a pipeline is malformed.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the run result as JSON")
	rootCmd.PersistentFlags().StringVar(&jqExpr, "jq", "", "Filter the JSON result with a jq expression")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringArrayVar(&setValues, "set", nil, "Config override (key=value, e.g. execute.limit=5)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// exitError carries a process exit code without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and exits the process with its status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
