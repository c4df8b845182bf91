// Package insights prints the ranked observations about the month
package insights

import (
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Show spending insights",
	Long: `Show the highest-priority observations about the selected month: top category,
month over month change, largest expense, savings rate and more. The number shown is
set by display.insight_limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.RunReport(cmd.Context(), root.GetContainer(), root.SharedFlags, report.SectionInsights)
	},
}
