// Package budget evaluates a monthly budget against ledger spending and manual
// entries and assigns tiered alert statuses.
package budget

import (
	"sort"

	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Input is what Evaluate needs for one month.
type Input struct {
	Config models.BudgetConfig
	// Breakdown is the ledger spend per category for the month.
	Breakdown map[string]decimal.Decimal
	// LedgerTotal is the ledger spend for the month across categories.
	LedgerTotal decimal.Decimal
	// Month restricts manual entries to a YYYY-MM month. Empty keeps them all.
	Month string
}

// Engine evaluates budgets.
type Engine struct {
	thresholds models.BudgetThresholds
	logger     logging.Logger
}

// NewEngine creates an Engine with the given cut points.
func NewEngine(thresholds models.BudgetThresholds, logger logging.Logger) *Engine {
	return &Engine{
		thresholds: thresholds,
		logger:     logging.ForComponent(logger, "budget"),
	}
}

// Evaluate computes the overall line and one line per category found in the
// limits, the ledger breakdown or the manual entries.
func (e *Engine) Evaluate(in Input) models.BudgetStatus {
	manualByCategory, manualTotal := e.sumManual(in.Config.ManualEntries, in.Month)

	overallSpent := in.LedgerTotal.Add(manualTotal)
	overallLimit := in.Config.OverallLimit
	overallPct := 0.0
	if overallLimit.IsPositive() {
		overallPct = percentage(overallSpent, overallLimit)
	}

	status := models.BudgetStatus{
		Overall: models.BudgetLine{
			Limit:      overallLimit,
			Spent:      overallSpent,
			Remaining:  overallLimit.Sub(overallSpent),
			Percentage: overallPct,
			Status:     e.Classify(overallLimit, overallPct),
		},
		Categories:   make(map[string]models.BudgetLine),
		CurrencyCode: in.Config.CurrencyCode,
	}

	for _, cat := range categoryUnion(in.Config.CategoryLimits, in.Breakdown, manualByCategory) {
		limit := in.Config.CategoryLimits[cat]
		spent := in.Breakdown[cat].Add(manualByCategory[cat])

		var pct float64
		switch {
		case limit.IsPositive():
			pct = percentage(spent, limit)
		case spent.IsPositive():
			pct = 100
		}

		status.Categories[cat] = models.BudgetLine{
			Category:   cat,
			Limit:      limit,
			Spent:      spent,
			Remaining:  limit.Sub(spent),
			Percentage: pct,
			Status:     e.Classify(limit, pct),
		}
	}

	e.logger.Debug("Evaluated budget",
		logging.F(logging.FieldPeriod, in.Month),
		logging.F(logging.FieldCount, len(status.Categories)),
		logging.F(logging.FieldStatus, string(status.Overall.Status)))

	return status
}

// Classify maps a limit and a spent percentage to a status. The checks run in
// priority order: no_limit, over_budget, critical, warning, on_track.
func (e *Engine) Classify(limit decimal.Decimal, pct float64) models.BudgetStatusKind {
	switch {
	case !limit.IsPositive():
		return models.StatusNoLimit
	case pct > e.thresholds.OverPercent:
		return models.StatusOverBudget
	case pct >= e.thresholds.CriticalPercent:
		return models.StatusCritical
	case pct >= e.thresholds.WarningPercent:
		return models.StatusWarning
	default:
		return models.StatusOnTrack
	}
}

// sumManual totals manual entries per category and overall. When month is set,
// entries dated in another month are ignored; undated entries always count.
func (e *Engine) sumManual(entries []models.ManualEntry, month string) (map[string]decimal.Decimal, decimal.Decimal) {
	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero

	for _, entry := range entries {
		if month != "" {
			if date, ok := entry.ParsedDate(); ok && dateutils.MonthKey(date) != month {
				continue
			}
		}
		cat := entry.Category
		if cat == "" {
			cat = models.CategoryOther
		}
		byCategory[cat] = byCategory[cat].Add(entry.Amount)
		total = total.Add(entry.Amount)
	}

	return byCategory, total
}

func categoryUnion(sets ...map[string]decimal.Decimal) []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range sets {
		for cat := range set {
			if !seen[cat] {
				seen[cat] = true
				out = append(out, cat)
			}
		}
	}
	sort.Strings(out)
	return out
}

func percentage(spent, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	return spent.Div(limit).Mul(hundred).InexactFloat64()
}
