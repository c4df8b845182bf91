// Package batch merges expense files and runs the analysis over a range of
// months.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MaxTrendMonths bounds the number of months a trend may span.
const MaxTrendMonths = 36

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format(dateutils.DateLayoutISO),
		dr.End.Format(dateutils.DateLayoutISO))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// Months returns the YYYY-MM keys of every month the range touches.
func (dr DateRange) Months() []string {
	if dr.Start.IsZero() || dr.End.IsZero() || dr.End.Before(dr.Start) {
		return nil
	}
	var months []string
	for m := dateutils.StartOfMonth(dr.Start); !m.After(dr.End); m = m.AddDate(0, 1, 0) {
		months = append(months, dateutils.MonthKey(m))
	}
	return months
}

// MonthRange returns the inclusive list of months between from and to, both
// YYYY-MM.
func MonthRange(from, to string) ([]string, error) {
	start, err := dateutils.ParseMonth(from)
	if err != nil {
		return nil, err
	}
	end, err := dateutils.ParseMonth(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("month range is inverted: %s is after %s", from, to)
	}
	months := DateRange{Start: start, End: end}.Months()
	if len(months) > MaxTrendMonths {
		return nil, fmt.Errorf("month range spans %d months, at most %d allowed", len(months), MaxTrendMonths)
	}
	return months, nil
}

// MonthSummary is one row of a spending trend.
type MonthSummary struct {
	Month            string                  `json:"month" yaml:"month" csv:"month"`
	Total            decimal.Decimal         `json:"total" yaml:"total" csv:"total"`
	Count            int                     `json:"count" yaml:"count" csv:"count"`
	TopCategory      string                  `json:"topCategory" yaml:"top_category" csv:"top_category"`
	TopCategoryShare float64                 `json:"topCategoryShare" yaml:"top_category_share" csv:"top_category_share"`
	RecurringCount   int                     `json:"recurringCount" yaml:"recurring_count" csv:"recurring_count"`
	BudgetStatus     models.BudgetStatusKind `json:"budgetStatus,omitempty" yaml:"budget_status,omitempty" csv:"budget_status"`
	BudgetPercentage float64                 `json:"budgetPercentage" yaml:"budget_percentage" csv:"budget_percentage"`
}

// BatchAggregator merges expense files and runs multi-month analyses.
type BatchAggregator struct {
	logger      logging.Logger
	concurrency int
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	return &BatchAggregator{
		logger:      logging.ForComponent(logger, "batch"),
		concurrency: 4,
	}
}

// AggregateExpenses reads every file with readFunc and merges the results.
// Files that fail to read are logged and skipped; it fails only when none
// could be read. Expenses are sorted chronologically, undated ones last, and
// an expense id seen in an earlier file is dropped so overlapping exports are
// not counted twice.
func (ba *BatchAggregator) AggregateExpenses(files []string, readFunc func(string) ([]models.Expense, error)) ([]models.Expense, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var all []models.Expense
	var sourceFiles []string
	var errs []error

	for _, file := range files {
		expenses, err := readFunc(file)
		if err != nil {
			ba.logger.WithError(err).Warn("Failed to read expense file",
				logging.F(logging.FieldInputFile, file))
			errs = append(errs, err)
			continue
		}
		ba.logger.Debug("Loaded expenses from file",
			logging.F(logging.FieldCount, len(expenses)),
			logging.F(logging.FieldInputFile, filepath.Base(file)))
		all = append(all, expenses...)
		sourceFiles = append(sourceFiles, filepath.Base(file))
	}

	if len(sourceFiles) == 0 {
		return nil, fmt.Errorf("no expense file could be read: %w", errors.Join(errs...))
	}

	all = ba.dropDuplicates(all)
	sortChronologically(all)

	ba.logger.Debug("Aggregated expenses",
		logging.F(logging.FieldCount, len(all)),
		logging.F(logging.FieldPeriod, ba.CalculateDateRange(all).String()),
		logging.F("source_files", strings.Join(sourceFiles, ", ")))
	return all, nil
}

func (ba *BatchAggregator) dropDuplicates(expenses []models.Expense) []models.Expense {
	seen := make(map[string]struct{}, len(expenses))
	out := expenses[:0]
	duplicates := 0
	for _, e := range expenses {
		if _, dup := seen[e.ID]; dup && e.ID != "" {
			duplicates++
			ba.logger.Debug("Duplicate expense dropped", logging.F(logging.FieldExpenseID, e.ID))
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	if duplicates > 0 {
		ba.logger.Warn("Dropped duplicate expenses found in several files", logging.F(logging.FieldCount, duplicates))
	}
	return out
}

func sortChronologically(expenses []models.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		di, okI := expenses[i].ParsedDate()
		dj, okJ := expenses[j].ParsedDate()
		if okI != okJ {
			return okI
		}
		if okI && !di.Equal(dj) {
			return di.Before(dj)
		}
		return expenses[i].ID < expenses[j].ID
	})
}

// CalculateDateRange returns the span of the parseable expense dates.
func (ba *BatchAggregator) CalculateDateRange(expenses []models.Expense) DateRange {
	var dr DateRange
	for _, e := range expenses {
		if d, ok := e.ParsedDate(); ok {
			dr = dr.Merge(DateRange{Start: d, End: d})
		}
	}
	return dr
}

// TrendMonths resolves the months of a trend. A blank from or to is taken
// from the first or last dated expense; a range derived this way that is
// longer than MaxTrendMonths keeps its most recent months.
func (ba *BatchAggregator) TrendMonths(expenses []models.Expense, from, to string) ([]string, error) {
	if from != "" && to != "" {
		return MonthRange(from, to)
	}

	dr := ba.CalculateDateRange(expenses)
	if dr.Start.IsZero() {
		return nil, errors.New("no dated expenses to derive the month range from")
	}
	derivedFrom := from == ""
	if from == "" {
		from = dateutils.MonthKey(dr.Start)
	}
	if to == "" {
		to = dateutils.MonthKey(dr.End)
	}

	if derivedFrom {
		end, err := dateutils.ParseMonth(to)
		if err != nil {
			return nil, err
		}
		earliest := dateutils.MonthKey(end.AddDate(0, -(MaxTrendMonths - 1), 0))
		if from < earliest {
			ba.logger.Info("Trend limited to the most recent months",
				logging.F(logging.FieldPeriod, dr.String()),
				logging.F(logging.FieldCount, MaxTrendMonths))
			from = earliest
		}
	}

	ba.logger.Debug("Trend range taken from expenses", logging.F(logging.FieldPeriod, dr.String()))
	return MonthRange(from, to)
}

// Trend analyzes in once per month and summarises each month. Months run
// concurrently; the result follows the order of months.
func (ba *BatchAggregator) Trend(ctx context.Context, analyzer *engine.Analyzer, in engine.Input, months []string) ([]MonthSummary, error) {
	summaries := make([]MonthSummary, len(months))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ba.concurrency)

	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			monthInput := in
			monthInput.Month = month
			dash, err := analyzer.Analyze(gctx, monthInput)
			if err != nil {
				return fmt.Errorf("month %s: %w", month, err)
			}
			summaries[i] = summarize(month, dash)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ba.logger.Debug("Trend computed", logging.F(logging.FieldCount, len(summaries)))
	return summaries, nil
}

func summarize(month string, dash *engine.Dashboard) MonthSummary {
	s := MonthSummary{
		Month:          month,
		Total:          dash.Breakdown.Total,
		Count:          dash.Breakdown.Count,
		RecurringCount: len(dash.Recurring),
	}
	if top, ok := dash.Breakdown.Top(); ok {
		s.TopCategory = top.Category
		s.TopCategoryShare = top.Percentage
	}
	if dash.Budget != nil {
		s.BudgetStatus = dash.Budget.Overall.Status
		s.BudgetPercentage = dash.Budget.Overall.Percentage
	}
	return s
}
