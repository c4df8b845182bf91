// Package recurring reports subscriptions and other repeating charges
package recurring

import (
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the recurring command
var Cmd = &cobra.Command{
	Use:   "recurring",
	Short: "Detect recurring charges",
	Long: `Detect weekly, bi-weekly and monthly charges from the expense history, with their
average amount and the next expected date. Supports --format csv.

Example:
  split-insights recurring --user-id 42 --expenses expenses.json --format csv -o recurring.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.RunReport(cmd.Context(), root.GetContainer(), root.SharedFlags, report.SectionRecurring)
	},
}
