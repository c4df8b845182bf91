// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DayRangeConfig is an inclusive day range as read from configuration.
type DayRangeConfig struct {
	Min float64 `mapstructure:"min" yaml:"min"`
	Max float64 `mapstructure:"max" yaml:"max"`
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Budget struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"budget" yaml:"budget"`

	Analytics struct {
		Recurring struct {
			Monthly              DayRangeConfig `mapstructure:"monthly" yaml:"monthly"`
			Weekly               DayRangeConfig `mapstructure:"weekly" yaml:"weekly"`
			BiWeekly             DayRangeConfig `mapstructure:"bi_weekly" yaml:"bi_weekly"`
			MaxCV                float64        `mapstructure:"max_cv" yaml:"max_cv"`
			MinOccurrences       int            `mapstructure:"min_occurrences" yaml:"min_occurrences"`
			MinWindowOccurrences int            `mapstructure:"min_window_occurrences" yaml:"min_window_occurrences"`
			WindowMonths         int            `mapstructure:"window_months" yaml:"window_months"`
			MaxResults           int            `mapstructure:"max_results" yaml:"max_results"`
			MinKeyLength         int            `mapstructure:"min_key_length" yaml:"min_key_length"`
		} `mapstructure:"recurring" yaml:"recurring"`

		Budget struct {
			WarningPercent  float64 `mapstructure:"warning_percent" yaml:"warning_percent"`
			CriticalPercent float64 `mapstructure:"critical_percent" yaml:"critical_percent"`
			OverPercent     float64 `mapstructure:"over_percent" yaml:"over_percent"`
		} `mapstructure:"budget" yaml:"budget"`

		Balance struct {
			NoiseEpsilon    float64 `mapstructure:"noise_epsilon" yaml:"noise_epsilon"`
			FriendThreshold float64 `mapstructure:"friend_threshold" yaml:"friend_threshold"`
		} `mapstructure:"balance" yaml:"balance"`

		SettleUp struct {
			MinAmount float64 `mapstructure:"min_amount" yaml:"min_amount"`
		} `mapstructure:"settle_up" yaml:"settle_up"`
	} `mapstructure:"analytics" yaml:"analytics"`

	Display struct {
		DefaultLocale   string            `mapstructure:"default_locale" yaml:"default_locale"`
		CurrencyLocales map[string]string `mapstructure:"currency_locales" yaml:"currency_locales"`
		InsightLimit    int               `mapstructure:"insight_limit" yaml:"insight_limit"`
	} `mapstructure:"display" yaml:"display"`
}

// LoadConfig loads the configuration hierarchically: defaults, then a
// config.yaml from the default locations (or configFile when it is not
// empty), then SPLIT_* environment variables. An explicit file that cannot be
// read is an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.split-insights")
		v.AddConfigPath(".split-insights")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("SPLIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := models.DefaultThresholds()

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Store defaults; empty means built-in categories and no budget
	v.SetDefault("categories.file", "")
	v.SetDefault("budget.file", "")

	// Analytics defaults
	r := d.Recurring
	v.SetDefault("analytics.recurring.monthly.min", r.Monthly.Min)
	v.SetDefault("analytics.recurring.monthly.max", r.Monthly.Max)
	v.SetDefault("analytics.recurring.weekly.min", r.Weekly.Min)
	v.SetDefault("analytics.recurring.weekly.max", r.Weekly.Max)
	v.SetDefault("analytics.recurring.bi_weekly.min", r.BiWeekly.Min)
	v.SetDefault("analytics.recurring.bi_weekly.max", r.BiWeekly.Max)
	v.SetDefault("analytics.recurring.max_cv", r.MaxCV)
	v.SetDefault("analytics.recurring.min_occurrences", r.MinOccurrences)
	v.SetDefault("analytics.recurring.min_window_occurrences", r.MinWindowOccurrences)
	v.SetDefault("analytics.recurring.window_months", r.WindowMonths)
	v.SetDefault("analytics.recurring.max_results", r.MaxResults)
	v.SetDefault("analytics.recurring.min_key_length", r.MinKeyLength)

	v.SetDefault("analytics.budget.warning_percent", d.Budget.WarningPercent)
	v.SetDefault("analytics.budget.critical_percent", d.Budget.CriticalPercent)
	v.SetDefault("analytics.budget.over_percent", d.Budget.OverPercent)

	v.SetDefault("analytics.balance.noise_epsilon", d.Balance.NoiseEpsilon.InexactFloat64())
	v.SetDefault("analytics.balance.friend_threshold", d.Balance.FriendThreshold.InexactFloat64())
	v.SetDefault("analytics.settle_up.min_amount", d.SettleUp.MinAmount.InexactFloat64())

	// Display defaults
	v.SetDefault("display.default_locale", currencyutils.DefaultLocale)
	v.SetDefault("display.currency_locales", currencyutils.DefaultCurrencyLocales())
	v.SetDefault("display.insight_limit", 2)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	r := config.Analytics.Recurring
	ranges := []struct {
		name string
		r    DayRangeConfig
	}{
		{"monthly", r.Monthly},
		{"weekly", r.Weekly},
		{"bi_weekly", r.BiWeekly},
	}
	for _, dr := range ranges {
		if dr.r.Min <= 0 || dr.r.Max <= 0 {
			return fmt.Errorf("analytics.recurring.%s must be positive, got: %v-%v", dr.name, dr.r.Min, dr.r.Max)
		}
		if dr.r.Min > dr.r.Max {
			return fmt.Errorf("analytics.recurring.%s is inverted: min %v > max %v", dr.name, dr.r.Min, dr.r.Max)
		}
	}

	if r.MaxCV <= 0 || r.MaxCV > 1 {
		return fmt.Errorf("analytics.recurring.max_cv must be in (0, 1], got: %f", r.MaxCV)
	}
	if r.MinOccurrences < 2 {
		return fmt.Errorf("analytics.recurring.min_occurrences must be at least 2, got: %d", r.MinOccurrences)
	}
	if r.MinWindowOccurrences < 1 || r.WindowMonths < 1 || r.MaxResults < 1 {
		return fmt.Errorf("analytics.recurring window settings must be positive")
	}

	b := config.Analytics.Budget
	if b.WarningPercent <= 0 || b.WarningPercent >= b.CriticalPercent || b.CriticalPercent >= b.OverPercent {
		return fmt.Errorf("analytics.budget cut points must satisfy 0 < warning < critical < over, got: %v/%v/%v",
			b.WarningPercent, b.CriticalPercent, b.OverPercent)
	}

	if config.Analytics.Balance.NoiseEpsilon < 0 || config.Analytics.Balance.FriendThreshold < 0 {
		return fmt.Errorf("analytics.balance thresholds cannot be negative")
	}
	if config.Analytics.SettleUp.MinAmount < 0 {
		return fmt.Errorf("analytics.settle_up.min_amount cannot be negative, got: %f", config.Analytics.SettleUp.MinAmount)
	}

	if config.Display.InsightLimit < 0 {
		return fmt.Errorf("display.insight_limit cannot be negative, got: %d", config.Display.InsightLimit)
	}

	return nil
}

// Thresholds maps the analytics section onto the engine thresholds.
func (c *Config) Thresholds() models.Thresholds {
	r := c.Analytics.Recurring
	return models.Thresholds{
		Recurring: models.RecurringThresholds{
			Monthly:              models.DayRange(r.Monthly),
			Weekly:               models.DayRange(r.Weekly),
			BiWeekly:             models.DayRange(r.BiWeekly),
			MaxCV:                r.MaxCV,
			MinOccurrences:       r.MinOccurrences,
			MinWindowOccurrences: r.MinWindowOccurrences,
			WindowMonths:         r.WindowMonths,
			MaxResults:           r.MaxResults,
			MinKeyLength:         r.MinKeyLength,
		},
		Budget: models.BudgetThresholds{
			WarningPercent:  c.Analytics.Budget.WarningPercent,
			CriticalPercent: c.Analytics.Budget.CriticalPercent,
			OverPercent:     c.Analytics.Budget.OverPercent,
		},
		Balance: models.BalanceThresholds{
			NoiseEpsilon:    decimal.NewFromFloat(c.Analytics.Balance.NoiseEpsilon),
			FriendThreshold: decimal.NewFromFloat(c.Analytics.Balance.FriendThreshold),
		},
		SettleUp: models.SettleUpThresholds{
			MinAmount: decimal.NewFromFloat(c.Analytics.SettleUp.MinAmount),
		},
	}
}

// ConfigureLoggingFromConfig builds the application logrus logger from the
// log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrus(config.Log.Level, config.Log.Format)
}
