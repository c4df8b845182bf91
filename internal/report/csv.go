package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// RecurringRow is the CSV shape of a recurring charge.
type RecurringRow struct {
	Description   string          `csv:"description"`
	Category      string          `csv:"category"`
	Frequency     string          `csv:"frequency"`
	Occurrences   int             `csv:"occurrences"`
	AverageAmount decimal.Decimal `csv:"average_amount"`
	MonthlyCost   decimal.Decimal `csv:"monthly_cost"`
	LastDate      string          `csv:"last_date"`
	NextExpected  string          `csv:"next_expected"`
}

func (g *Generator) renderCSV(w io.Writer, dash *engine.Dashboard, sections []Section) error {
	if len(sections) != 1 {
		return ErrCSVSection
	}
	switch sections[0] {
	case SectionBreakdown:
		return g.WriteBreakdownCSV(w, dash.Breakdown)
	case SectionRecurring:
		return g.WriteRecurringCSV(w, dash.Recurring)
	case SectionSettleUp:
		return g.WriteSettleUpCSV(w, dash.SettleUp)
	case SectionBudget:
		if dash.Budget == nil {
			return fmt.Errorf("no budget to export: %w", ErrCSVSection)
		}
		return g.WriteBudgetCSV(w, *dash.Budget)
	}
	return ErrCSVSection
}

// WriteRecurringCSV writes detected recurring charges as CSV.
func (g *Generator) WriteRecurringCSV(w io.Writer, charges []models.RecurringCharge) error {
	rows := make([]RecurringRow, 0, len(charges))
	for _, r := range charges {
		rows = append(rows, RecurringRow{
			Description:   r.Description,
			Category:      r.Category,
			Frequency:     string(r.Frequency),
			Occurrences:   r.OccurrenceCount,
			AverageAmount: r.AverageAmount,
			MonthlyCost:   r.MonthlyCost(),
			LastDate:      dateutils.ToISODate(r.LastDate),
			NextExpected:  dateutils.ToISODate(r.NextExpectedDate()),
		})
	}
	return g.writeCSV(w, &rows, len(rows))
}

// WriteSettleUpCSV writes settle-up suggestions as CSV.
func (g *Generator) WriteSettleUpCSV(w io.Writer, suggestions []models.Suggestion) error {
	rows := append([]models.Suggestion{}, suggestions...)
	return g.writeCSV(w, &rows, len(rows))
}

// WriteBreakdownCSV writes the category breakdown as CSV.
func (g *Generator) WriteBreakdownCSV(w io.Writer, breakdown models.CategoryBreakdown) error {
	rows := append([]models.CategorySpend{}, breakdown.Categories...)
	return g.writeCSV(w, &rows, len(rows))
}

// WriteBudgetCSV writes the budget lines as CSV, the overall line first.
func (g *Generator) WriteBudgetCSV(w io.Writer, status models.BudgetStatus) error {
	overall := status.Overall
	overall.Category = "Overall"
	rows := append([]models.BudgetLine{overall}, status.SortedCategories()...)
	return g.writeCSV(w, &rows, len(rows))
}

func (g *Generator) writeCSV(w io.Writer, rows interface{}, count int) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	g.logger.Debug("Wrote CSV rows",
		logging.F(logging.FieldCount, count),
		logging.F(logging.FieldDelimiter, string(g.delimiter)))
	return nil
}
