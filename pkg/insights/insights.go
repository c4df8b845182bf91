// Package insights is the public entry point to the analytics engine.
//
// It derives a personal dashboard from the records exported by a bill-splitting
// service: balances per currency and friend, spending by category, recurring
// charges, budget status, settle-up suggestions and ranked insights. All
// methods are safe for concurrent use.
//
// Example:
//
//	eng := insights.New(insights.WithCategories(myCategories))
//	dash, err := eng.Analyze(ctx, insights.Input{
//		Expenses: expenses,
//		Groups:   groups,
//		User:     me,
//		Month:    "2024-03",
//	})
package insights

import (
	"context"

	"fjacquet/split-insights/internal/categorizer"
	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/sirupsen/logrus"
)

// Record and result types shared with the engine.
type (
	Expense         = models.Expense
	Share           = models.Share
	Income          = models.Income
	Group           = models.Group
	Member          = models.Member
	Friend          = models.Friend
	User            = models.User
	Balance         = models.Balance
	DebtEdge        = models.DebtEdge
	BudgetConfig    = models.BudgetConfig
	ManualEntry     = models.ManualEntry
	CategoryConfig  = models.CategoryConfig
	Thresholds      = models.Thresholds
	Input           = engine.Input
	Dashboard       = engine.Dashboard
	Insight         = models.Insight
	Suggestion      = models.Suggestion
	RecurringCharge = models.RecurringCharge
	BudgetStatus    = models.BudgetStatus
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	thresholds    Thresholds
	categories    []CategoryConfig
	defaultLocale string
	locales       map[string]string
	logger        logging.Logger
}

// WithThresholds replaces the default tuning constants.
func WithThresholds(t Thresholds) Option {
	return func(o *options) { o.thresholds = t }
}

// WithCategories sets the ordered category list used for classification.
// An empty list keeps the built-in categories.
func WithCategories(categories []CategoryConfig) Option {
	return func(o *options) { o.categories = categories }
}

// WithCurrencyLocales sets the locale used to format each ISO currency code
// in insight text, and the fallback for codes not in the table.
func WithCurrencyLocales(defaultLocale string, locales map[string]string) Option {
	return func(o *options) {
		o.defaultLocale = defaultLocale
		o.locales = locales
	}
}

// WithLogger routes the engine's debug logging to a logrus logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logging.NewLogrusAdapterFromLogger(logger)
		}
	}
}

// Engine runs analyses. Create one with New and reuse it.
type Engine struct {
	analyzer   *engine.Analyzer
	classifier *categorizer.Classifier
}

// New creates an Engine with the default thresholds and categories unless
// overridden by opts.
func New(opts ...Option) *Engine {
	o := options{
		thresholds:    models.DefaultThresholds(),
		defaultLocale: currencyutils.DefaultLocale,
		locales:       currencyutils.DefaultCurrencyLocales(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	classifier := categorizer.NewClassifier(o.categories, o.logger)
	formatter := currencyutils.NewFormatter(o.defaultLocale, o.locales)
	return &Engine{
		analyzer:   engine.NewAnalyzer(o.thresholds, classifier, formatter, o.logger),
		classifier: classifier,
	}
}

// Analyze derives the dashboard for in.
func (e *Engine) Analyze(ctx context.Context, in Input) (*Dashboard, error) {
	return e.analyzer.Analyze(ctx, in)
}

// Classify returns the category of an expense description.
func (e *Engine) Classify(description string) string {
	return e.classifier.Classify(description)
}

// Categories returns the category names in classification order, ending
// with the catch-all category.
func (e *Engine) Categories() []string {
	return e.classifier.Names()
}

// DefaultThresholds returns the built-in tuning constants.
func DefaultThresholds() Thresholds {
	return models.DefaultThresholds()
}

// DefaultCategories returns the built-in category list.
func DefaultCategories() []CategoryConfig {
	return categorizer.DefaultCategories()
}
