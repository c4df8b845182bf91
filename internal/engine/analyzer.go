// Package engine runs the analytics components over one set of inputs and
// assembles their outputs into a Dashboard.
//
// Components are independent except for the budget, which reads the category
// breakdown, and the insights, which read everything. The independent ones run
// concurrently; each goroutine owns one Dashboard field.
package engine

import (
	"context"
	"fmt"
	"time"

	"fjacquet/split-insights/internal/balance"
	"fjacquet/split-insights/internal/budget"
	"fjacquet/split-insights/internal/categorizer"
	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/insights"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/recurring"
	"fjacquet/split-insights/internal/settleup"

	"golang.org/x/sync/errgroup"
)

// Input is the raw data for one analysis.
type Input struct {
	Expenses []models.Expense
	Income   []models.Income
	Groups   []models.Group
	Friends  []models.Friend
	User     models.User
	// Budget is optional; without it the dashboard carries no budget status.
	Budget *models.BudgetConfig
	// Month selects the YYYY-MM month to analyze. Empty means the month of Now.
	Month string
	// Now is the reference time. Zero means time.Now().
	Now time.Time
}

// Dashboard is the full derived state for one user and month.
type Dashboard struct {
	GeneratedAt time.Time                `json:"generatedAt" yaml:"generated_at"`
	Period      models.Period            `json:"period" yaml:"period"`
	Balances    models.GroupTotals       `json:"balances" yaml:"balances"`
	Friends     []models.FriendBalance   `json:"friends" yaml:"friends"`
	Breakdown   models.CategoryBreakdown `json:"breakdown" yaml:"breakdown"`
	Recurring   []models.RecurringCharge `json:"recurring" yaml:"recurring"`
	Budget      *models.BudgetStatus     `json:"budget,omitempty" yaml:"budget,omitempty"`
	SettleUp    []models.Suggestion      `json:"settleUp" yaml:"settle_up"`
	Insights    []models.Insight         `json:"insights" yaml:"insights"`
}

// Analyzer wires the analytics components together.
type Analyzer struct {
	classifier *categorizer.Classifier
	aggregator *balance.Aggregator
	detector   *recurring.Detector
	budget     *budget.Engine
	resolver   *settleup.Resolver
	generator  *insights.Generator
	logger     logging.Logger
}

// NewAnalyzer creates an Analyzer. A nil classifier uses the default categories
// and a nil formatter the default locale table.
func NewAnalyzer(thresholds models.Thresholds, classifier *categorizer.Classifier, formatter *currencyutils.Formatter, logger logging.Logger) *Analyzer {
	logger = logging.OrDiscard(logger)
	if classifier == nil {
		classifier = categorizer.NewClassifier(nil, logger)
	}
	return &Analyzer{
		classifier: classifier,
		aggregator: balance.NewAggregator(thresholds.Balance, logger),
		detector:   recurring.NewDetector(thresholds.Recurring, classifier, logger),
		budget:     budget.NewEngine(thresholds.Budget, logger),
		resolver:   settleup.NewResolver(thresholds.SettleUp, logger),
		generator:  insights.NewGenerator(formatter, logger),
		logger:     logging.ForComponent(logger, "engine"),
	}
}

// Classifier returns the classifier used by the analyzer.
func (a *Analyzer) Classifier() *categorizer.Classifier {
	return a.classifier
}

// Analyze computes the dashboard for in. It fails only on an invalid month or a
// cancelled context.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	period, asOf, err := resolvePeriod(in.Month, now)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	dash := &Dashboard{GeneratedAt: now, Period: period}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		dash.Balances = a.aggregator.Aggregate(in.Groups, in.User.ID)
		dash.Friends = a.aggregator.Friends(in.Friends)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		dash.Breakdown = a.classifier.Breakdown(in.Expenses, in.User.ID, period)
		if in.Budget != nil {
			status := a.budget.Evaluate(budget.Input{
				Config:      *in.Budget,
				Breakdown:   dash.Breakdown.Amounts(),
				LedgerTotal: dash.Breakdown.Total,
				Month:       period.Month(),
			})
			dash.Budget = &status
		}
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		dash.Recurring = a.detector.Detect(expensesUpTo(in.Expenses, asOf), asOf)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		dash.SettleUp = a.resolver.Resolve(in.Groups, in.Friends, in.User)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	dash.Insights = a.generator.Generate(insights.Input{
		Expenses:     in.Expenses,
		Income:       in.Income,
		Groups:       in.Groups,
		UserID:       in.User.ID,
		Period:       period,
		Breakdown:    dash.Breakdown,
		Friends:      dash.Friends,
		CurrencyCode: displayCurrency(in),
	})

	a.logger.Debug("Analysis complete",
		logging.F(logging.FieldPeriod, period.String()),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return dash, nil
}

// resolvePeriod returns the month to analyze and the reference time for
// recurring detection, which is the end of a past month or now.
func resolvePeriod(month string, now time.Time) (models.Period, time.Time, error) {
	if month == "" {
		return models.MonthPeriod(now), now, nil
	}
	start, err := dateutils.ParseMonth(month)
	if err != nil {
		return models.Period{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	period := models.MonthPeriod(start)
	asOf := now
	if period.End.Before(now) {
		asOf = period.End
	}
	return period, asOf, nil
}

// expensesUpTo drops expenses dated after asOf so a past month is analyzed
// with the history known at its end. Unparseable dates are kept for the
// detector to reject.
func expensesUpTo(expenses []models.Expense, asOf time.Time) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if d, ok := e.ParsedDate(); ok && d.After(asOf) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func displayCurrency(in Input) string {
	if in.Budget != nil && in.Budget.CurrencyCode != "" {
		return in.Budget.CurrencyCode
	}
	return in.User.DefaultCurrency
}
