// Package balances reports what the user is owed and owes
package balances

import (
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the balances command
var Cmd = &cobra.Command{
	Use:   "balances",
	Short: "Show balances per currency and per friend",
	Long: `Show the totals owed to you and owed by you in every currency, merged across all
groups, and the per-friend balances above the display threshold.

Example:
  split-insights balances --user me.json --groups groups.json --friends friends.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.RunReport(cmd.Context(), root.GetContainer(), root.SharedFlags,
			report.SectionBalances, report.SectionFriends)
	},
}
