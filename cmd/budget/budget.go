// Package budget reports the month's spending against the configured limits
package budget

import (
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Check spending against the budget",
	Long: `Evaluate the overall and per-category limits of the budget file for the selected
month, including manual entries, and flag the lines in warning, critical or over budget.

Example:
  split-insights budget --user-id 42 --expenses expenses.json --budget budget.yaml --month 2024-03`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.RunReport(cmd.Context(), root.GetContainer(), root.SharedFlags,
			report.SectionBreakdown, report.SectionBudget)
	},
}
