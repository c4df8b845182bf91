package categorizer

import (
	"sort"

	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Breakdown sums the user's owed share per category over the countable expenses
// dated inside period. Expenses without a parseable date, or in which the user
// owes nothing, are skipped. Rows are sorted by descending amount, then name.
func (c *Classifier) Breakdown(expenses []models.Expense, userID int64, period models.Period) models.CategoryBreakdown {
	amounts := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	total := decimal.Zero
	count := 0
	skipped := 0

	for _, e := range expenses {
		if !e.IsCountable() {
			continue
		}
		date, ok := e.ParsedDate()
		if !ok {
			skipped++
			continue
		}
		if !period.Contains(date) {
			continue
		}
		share := e.OwedBy(userID)
		if !share.IsPositive() {
			continue
		}

		cat := c.CategoryOf(e)
		amounts[cat] = amounts[cat].Add(share)
		counts[cat]++
		total = total.Add(share)
		count++
	}

	rows := make([]models.CategorySpend, 0, len(amounts))
	for cat, amount := range amounts {
		rows = append(rows, models.CategorySpend{
			Category:   cat,
			Amount:     amount,
			Count:      counts[cat],
			Percentage: Percentage(amount, total),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Category < rows[j].Category
	})

	c.logger.Debug("Built category breakdown",
		logging.F(logging.FieldCount, count),
		logging.F(logging.FieldPeriod, period.String()),
		logging.F("skipped_undated", skipped))

	return models.CategoryBreakdown{
		Categories: rows,
		Total:      total,
		Count:      count,
	}
}

// Percentage returns part/whole*100, or 0 when whole is not positive.
func Percentage(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
