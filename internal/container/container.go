// Package container provides dependency injection for the split-insights
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/split-insights/internal/categorizer"
	"fjacquet/split-insights/internal/config"
	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/ingest"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/report"
	"fjacquet/split-insights/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	budgetStore *store.BudgetStore
	classifier  *categorizer.Classifier
	formatter   *currencyutils.Formatter
	analyzer    *engine.Analyzer
	reader      *ingest.Reader
	reporter    *report.Generator
}

// NewContainer creates and wires all application dependencies with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger creates the container around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDiscard(logger)

	delimiter := ','
	if cfg.CSV.Delimiter != "" {
		delimiter = []rune(cfg.CSV.Delimiter)[0]
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	budgetStore := store.NewBudgetStore(cfg.Budget.File, logger)

	classifier := categorizer.NewClassifierFromStore(categoryStore, logger)
	for _, conflict := range classifier.Validate() {
		logger.Warn("Keyword listed under several categories; the first one wins",
			logging.F(logging.FieldKeyword, conflict.Keyword),
			logging.F(logging.FieldCategory, conflict.Categories))
	}

	defaultLocale := cfg.Display.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = currencyutils.DefaultLocale
	}
	locales := cfg.Display.CurrencyLocales
	if len(locales) == 0 {
		locales = currencyutils.DefaultCurrencyLocales()
	}
	formatter := currencyutils.NewFormatter(defaultLocale, locales)

	analyzer := engine.NewAnalyzer(cfg.Thresholds(), classifier, formatter, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldCount, len(classifier.Categories())),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		budgetStore: budgetStore,
		classifier:  classifier,
		formatter:   formatter,
		analyzer:    analyzer,
		reader:      ingest.NewReader(delimiter, logger),
		reporter:    report.NewGenerator(formatter, delimiter, cfg.Display.InsightLimit, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetClassifier returns the category classifier.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetFormatter returns the currency formatter.
func (c *Container) GetFormatter() *currencyutils.Formatter {
	return c.formatter
}

// GetAnalyzer returns the analytics orchestrator.
func (c *Container) GetAnalyzer() *engine.Analyzer {
	return c.analyzer
}

// GetReader returns the input file reader.
func (c *Container) GetReader() *ingest.Reader {
	return c.reader
}

// GetReporter returns the report generator.
func (c *Container) GetReporter() *report.Generator {
	return c.reporter
}

// LoadBudget loads the configured budget, or nil when none is configured.
func (c *Container) LoadBudget() (*models.BudgetConfig, error) {
	return c.budgetStore.LoadBudget()
}

// WithBudgetFile returns a copy of the container reading its budget from
// path. An empty path keeps the configured file.
func (c *Container) WithBudgetFile(path string) *Container {
	if path == "" {
		return c
	}
	clone := *c
	clone.budgetStore = store.NewBudgetStore(path, c.logger)
	return &clone
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
