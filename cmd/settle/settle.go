// Package settle suggests the payments that clear the user's group debts
package settle

import (
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the settle command
var Cmd = &cobra.Command{
	Use:   "settle",
	Short: "Suggest settle-up payments",
	Long: `List the payments, taken from each group's simplified debts, that involve you,
largest first. Supports --format csv.

Example:
  split-insights settle --user me.json --groups groups.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.RunReport(cmd.Context(), root.GetContainer(), root.SharedFlags, report.SectionSettleUp)
	},
}
