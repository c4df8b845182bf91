package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/split-insights/internal/batch"
	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/logging"

	"gopkg.in/yaml.v3"
)

// RenderTrend writes a month-by-month spending trend. currency is only used to
// format amounts in the text output.
func (g *Generator) RenderTrend(w io.Writer, summaries []batch.MonthSummary, currency string, format Format) error {
	g.logger.Debug("Rendering trend",
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(summaries)))

	rows := nonNil(summaries)
	switch format {
	case FormatText, "":
		return g.textTrend(w, rows, currency)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("failed to marshal JSON trend: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("failed to marshal YAML trend: %w", err)
		}
		return encoder.Close()
	case FormatCSV:
		return g.writeCSV(w, &rows, len(rows))
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) textTrend(w io.Writer, rows []batch.MonthSummary, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	heading(tw, "Spending trend")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "  No months selected.")
	}
	for _, r := range rows {
		top := "-"
		if r.TopCategory != "" {
			top = fmt.Sprintf("%s (%s)", r.TopCategory, currencyutils.FormatPercent(r.TopCategoryShare))
		}
		budget := "-"
		if r.BudgetStatus != "" {
			budget = fmt.Sprintf("%s %s", currencyutils.FormatPercent(r.BudgetPercentage), r.BudgetStatus)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d expenses\t%s\t%d recurring\t%s\t\n",
			r.Month, g.money(r.Total, currency), r.Count, top, r.RecurringCount, budget)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write text trend: %w", err)
	}
	return nil
}
