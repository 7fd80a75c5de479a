package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/stevehiehn/demoprobe/internal/config"
	"github.com/stevehiehn/demoprobe/internal/contract"
	"github.com/stevehiehn/demoprobe/internal/demoapi"
)

// explainStep describes one request the check would make.
type explainStep struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	URL    string `json:"url"`
	Fatal  bool   `json:"fatal"`
}

type explanation struct {
	BaseURL  string             `json:"base_url"`
	Steps    []explainStep      `json:"steps"`
	Mappings []contract.Mapping `json:"mappings"`
	Required []contract.Rule    `json:"required"`
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the requests and field contract without calling the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, parseInputs(setValues))
		if err != nil {
			return err
		}
		fc, err := loadContract(contractPath)
		if err != nil {
			return err
		}

		ep := demoapi.Endpoints{BaseURL: cfg.API.BaseURL, PathPrefix: cfg.API.PathPrefix}
		ex := explanation{
			BaseURL: cfg.API.BaseURL,
			Steps: []explainStep{
				{Name: "Plugin Info", Method: http.MethodGet, URL: ep.Info(), Fatal: true},
				{Name: "List Pipelines", Method: http.MethodGet, URL: ep.List(), Fatal: true},
				{Name: "Execute Pipeline", Method: http.MethodPost, URL: ep.Execute("") + "{pipelineName}", Fatal: false},
			},
			Mappings: fc.Mappings,
			Required: fc.Required,
		}

		if structuredOutput() {
			return writeJSON(cmd.OutOrStdout(), ex)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "API Base URL: %s\n\n", ex.BaseURL)
		for i, s := range ex.Steps {
			fmt.Fprintf(w, "Step %d: %s\n", i+1, s.Name)
			fmt.Fprintf(w, "  %s %s\n", s.Method, s.URL)
			if s.Method == http.MethodPost {
				fmt.Fprintf(w, "  Body: {\"parameters\":{\"limit\":%d}}\n", cfg.Execute.Limit)
			}
			if s.Fatal {
				fmt.Fprintln(w, "  Failure aborts the run")
			} else {
				fmt.Fprintln(w, "  Failure is reported as a warning")
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "Component field mappings:")
		for _, m := range ex.Mappings {
			fmt.Fprintf(w, "  %s -> %s\n", m.Field, m.Source())
		}
		fmt.Fprintln(w, "Required fields (one issue per pipeline when all are missing):")
		for _, r := range ex.Required {
			fmt.Fprintf(w, "  any of %v: %s\n", r.AnyOf, r.Message)
		}
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVar(&contractPath, "contract", "", "Field contract YAML (default: built-in)")
	rootCmd.AddCommand(explainCmd)
}
