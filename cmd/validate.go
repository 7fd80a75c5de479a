package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stevehiehn/demoprobe/internal/contract"
)

var validateCmd = &cobra.Command{
	Use:   "validate <contract.yaml>",
	Short: "Validate a field contract file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading contract file: %w", err)
		}
		c, err := contract.Parse(data)
		if err != nil {
			if structuredOutput() {
				if werr := writeJSON(cmd.OutOrStdout(), map[string]any{"valid": false, "error": err.Error()}); werr != nil {
					return werr
				}
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %s\n", err)
			}
			return &exitError{code: 1}
		}
		if structuredOutput() {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"valid": true, "mappings": len(c.Mappings), "required": len(c.Required)})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Contract is valid (%d mappings, %d required rules).\n", len(c.Mappings), len(c.Required))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
