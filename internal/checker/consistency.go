package checker

import (
	"fmt"

	"github.com/stevehiehn/demoprobe/internal/contract"
	"github.com/stevehiehn/demoprobe/internal/demoapi"
)

// VerifyConsistency checks every pipeline against the built-in contract:
// one issue when neither pipeline_name nor name is present, and another when
// neither display_name nor name is present. Issues keep input order.
func VerifyConsistency(pipelines []demoapi.PipelineSummary) []string {
	return VerifyWith(contract.Default(), pipelines)
}

// VerifyWith checks pipelines against c's required rules.
func VerifyWith(c *contract.Contract, pipelines []demoapi.PipelineSummary) []string {
	issues := []string{}
	for i, p := range pipelines {
		for _, rule := range c.Required {
			if !rule.Satisfied(p) {
				issues = append(issues, fmt.Sprintf("Demo %d: %s", i+1, rule.Message))
			}
		}
	}
	return issues
}
