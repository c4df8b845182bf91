// Package trend summarises spending month by month
package trend

import (
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"

	"github.com/spf13/cobra"
)

var (
	// From is the first month of the trend.
	From string
	// To is the last month of the trend.
	To string
)

// Cmd represents the trend command
var Cmd = &cobra.Command{
	Use:   "trend",
	Short: "Summarise spending over several months",
	Long: `Analyze each month between --from and --to and print one line per month with
the total spent, the top category, the recurring charges known at the end of the
month and the budget status. Without --from or --to the range follows the first
and last dated expense, keeping at most the 36 most recent months. Several
expense exports can be merged with repeated --expenses flags; an expense present
in more than one file is counted once.

Example:
  split-insights trend --user-id 42 -e 2023.json -e 2024.json --from 2023-10 --to 2024-03`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.RunTrend(cmd.Context(), root.GetContainer(), root.SharedFlags, From, To)
	},
}

func init() {
	Cmd.Flags().StringVar(&From, "from", "", "First month as YYYY-MM (default: month of the first expense)")
	Cmd.Flags().StringVar(&To, "to", "", "Last month as YYYY-MM (default: month of the last expense)")
}
