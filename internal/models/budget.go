package models

import (
	"sort"
	"time"

	"fjacquet/split-insights/internal/dateutils"

	"github.com/shopspring/decimal"
)

// ManualEntry is an expense recorded by hand in the budget, outside the
// bill-splitting service.
type ManualEntry struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Category string          `json:"category" yaml:"category"`
	Date     string          `json:"date" yaml:"date"`
}

// ParsedDate returns the entry date. The boolean is false when the date is
// missing or cannot be parsed.
func (m ManualEntry) ParsedDate() (time.Time, bool) {
	t, err := dateutils.ParseDate(m.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BudgetConfig holds the user's monthly limits.
type BudgetConfig struct {
	OverallLimit   decimal.Decimal            `json:"overallLimit" yaml:"overall_limit"`
	CategoryLimits map[string]decimal.Decimal `json:"categoryLimits" yaml:"category_limits"`
	ManualEntries  []ManualEntry              `json:"manualEntries" yaml:"manual_entries"`
	CurrencyCode   string                     `json:"currencyCode" yaml:"currency_code"`
}

// BudgetLine is the evaluated state of one budget limit.
type BudgetLine struct {
	Category   string           `json:"category,omitempty" yaml:"category,omitempty" csv:"category"`
	Limit      decimal.Decimal  `json:"limit" yaml:"limit" csv:"limit"`
	Spent      decimal.Decimal  `json:"spent" yaml:"spent" csv:"spent"`
	Remaining  decimal.Decimal  `json:"remaining" yaml:"remaining" csv:"remaining"`
	Percentage float64          `json:"percentage" yaml:"percentage" csv:"percentage"`
	Status     BudgetStatusKind `json:"status" yaml:"status" csv:"status"`
}

// BudgetStatus is the evaluated budget: the overall line plus one line per
// category.
type BudgetStatus struct {
	Overall      BudgetLine            `json:"overall" yaml:"overall"`
	Categories   map[string]BudgetLine `json:"categories" yaml:"categories"`
	CurrencyCode string                `json:"currencyCode" yaml:"currency_code"`
}

// SortedCategories returns the category lines by descending percentage, then
// category name.
func (s BudgetStatus) SortedCategories() []BudgetLine {
	lines := make([]BudgetLine, 0, len(s.Categories))
	for _, line := range s.Categories {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Percentage != lines[j].Percentage {
			return lines[i].Percentage > lines[j].Percentage
		}
		return lines[i].Category < lines[j].Category
	})
	return lines
}

// Alerts returns the category lines in warning, critical or over_budget, in
// SortedCategories order.
func (s BudgetStatus) Alerts() []BudgetLine {
	var alerts []BudgetLine
	for _, line := range s.SortedCategories() {
		if line.Status.IsAlert() {
			alerts = append(alerts, line)
		}
	}
	return alerts
}
