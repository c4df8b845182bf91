// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/split-insights/internal/config"
	"fjacquet/split-insights/internal/container"
	"fjacquet/split-insights/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Expenses    []string
	ExpensesCSV []string
	ExpensesDir string
	Income      string
	Groups      string
	Friends     string
	User        string
	UserID      int64
	Budget      string
	Month       string
	Format      string
	Output      string
	Config      string
	LogLevel    string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "split-insights",
		Short: "Analytics over shared-expense ledgers: balances, budgets, recurring charges and insights.",
		Long: `split-insights reads the expenses, groups and friends exported from a bill-splitting
service and derives a personal dashboard: balances per currency, spending by category,
recurring charges, budget alerts, settle-up suggestions and ranked insights.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to split-insights!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.Warnf("Failed to close container: %v", err)
				}
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	appConfig    *config.Config
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringSliceVarP(&SharedFlags.Expenses, "expenses", "e", nil, "Expenses JSON file (repeatable)")
	flags.StringSliceVar(&SharedFlags.ExpensesCSV, "expenses-csv", nil, "Flat ledger CSV file (repeatable)")
	flags.StringVar(&SharedFlags.ExpensesDir, "expenses-dir", "", "Directory of expense exports (*.json and *.csv)")
	flags.StringVar(&SharedFlags.Income, "income", "", "Income JSON file")
	flags.StringVarP(&SharedFlags.Groups, "groups", "g", "", "Groups JSON file")
	flags.StringVarP(&SharedFlags.Friends, "friends", "f", "", "Friends JSON file")
	flags.StringVarP(&SharedFlags.User, "user", "u", "", "Current user JSON file")
	flags.Int64Var(&SharedFlags.UserID, "user-id", 0, "Current user id when no user file is given")
	flags.StringVarP(&SharedFlags.Budget, "budget", "b", "", "Budget YAML file (overrides budget.file)")
	flags.StringVarP(&SharedFlags.Month, "month", "m", "", "Month to analyze as YYYY-MM (default: current month)")
	flags.StringVar(&SharedFlags.Format, "format", "text", "Output format: text, json, yaml or csv")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	flags.StringVar(&SharedFlags.Config, "config", "", "Config file (default: $HOME/.split-insights/config.yaml)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
}

func initialize() error {
	config.LoadEnv(Log)

	cfg, err := config.LoadConfig(SharedFlags.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.LogLevel != "" {
		if _, err := logrus.ParseLevel(SharedFlags.LogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", SharedFlags.LogLevel, err)
		}
		cfg.Log.Level = SharedFlags.LogLevel
	}
	Log = config.ConfigureLoggingFromConfig(cfg)

	c, err := container.NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(Log))
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	appConfig = cfg
	appContainer = c.WithBudgetFile(SharedFlags.Budget)
	return nil
}

// GetConfig returns the configuration loaded before the running command.
func GetConfig() *config.Config {
	return appConfig
}

// GetContainer returns the dependency container built before the running
// command.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogrusAdapter returns the shared logger behind the logging interface.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// SetContainer replaces the container; commands built outside Execute use it.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		appConfig = c.GetConfig()
	}
}
