// Package dashboard renders every section of the analysis
package dashboard

import (
	"fmt"

	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/report"

	"github.com/spf13/cobra"
)

// Sections restricts the dashboard to the named sections.
var Sections []string

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the full dashboard",
	Long: `Run every analysis for the selected month and render the full dashboard.

Use --sections to pick a subset among balances, friends, breakdown, recurring,
budget, settle-up and insights.

Example:
  split-insights dashboard --user me.json --expenses expenses.json --groups groups.json \
    --friends friends.json --budget budget.yaml --format json -o dashboard.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := ParseSections(Sections)
		if err != nil {
			return err
		}
		return common.RunReport(cmd.Context(), root.GetContainer(), root.SharedFlags, sections...)
	},
}

func init() {
	Cmd.Flags().StringSliceVarP(&Sections, "sections", "s", nil, "Sections to render (default: all)")
}

// ParseSections validates section names. An empty list selects everything.
func ParseSections(names []string) ([]report.Section, error) {
	known := make(map[report.Section]bool, len(report.AllSections))
	for _, s := range report.AllSections {
		known[s] = true
	}

	sections := make([]report.Section, 0, len(names))
	for _, name := range names {
		s := report.Section(name)
		if !known[s] {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		sections = append(sections, s)
	}
	return sections, nil
}
