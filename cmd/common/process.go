// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/batch"
	"fjacquet/split-insights/internal/container"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/fileutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/report"
)

// ErrNoUser is returned when neither a user file nor a user id was given.
var ErrNoUser = errors.New("the current user is required: pass --user or --user-id")

// ErrNoContainer is returned when a command runs before initialization.
var ErrNoContainer = errors.New("application is not initialized")

// LoadInput reads every input file named in flags into an engine input. The
// expense files are merged and deduplicated; optional files left empty stay
// empty.
func LoadInput(c *container.Container, flags root.CommonFlags) (engine.Input, error) {
	in := engine.Input{Month: flags.Month}
	reader := c.GetReader()
	logger := c.GetLogger()

	switch {
	case flags.User != "":
		user, err := reader.ReadUserJSON(flags.User)
		if err != nil {
			return in, err
		}
		in.User = user
	case flags.UserID != 0:
		in.User = models.User{ID: flags.UserID}
	default:
		return in, ErrNoUser
	}

	jsonFiles := append([]string{}, flags.Expenses...)
	csvList := append([]string{}, flags.ExpensesCSV...)
	if flags.ExpensesDir != "" {
		dirJSON, dirCSV, err := fileutils.ExportFiles(flags.ExpensesDir)
		if err != nil {
			return in, err
		}
		jsonFiles = append(jsonFiles, dirJSON...)
		csvList = append(csvList, dirCSV...)
	}
	files := append(jsonFiles, csvList...)
	csvFiles := make(map[string]bool, len(csvList))
	for _, f := range csvList {
		csvFiles[f] = true
	}
	expenses, err := batch.NewBatchAggregator(logger).AggregateExpenses(files, func(path string) ([]models.Expense, error) {
		if csvFiles[path] {
			return reader.ReadExpensesCSV(path, in.User.ID)
		}
		return reader.ReadExpensesJSON(path)
	})
	if err != nil {
		return in, err
	}
	in.Expenses = expenses

	if flags.Income != "" {
		if in.Income, err = reader.ReadIncomeJSON(flags.Income); err != nil {
			return in, err
		}
	}
	if flags.Groups != "" {
		if in.Groups, err = reader.ReadGroupsJSON(flags.Groups); err != nil {
			return in, err
		}
	}
	if flags.Friends != "" {
		if in.Friends, err = reader.ReadFriendsJSON(flags.Friends); err != nil {
			return in, err
		}
	}

	if in.Budget, err = c.LoadBudget(); err != nil {
		return in, err
	}

	logger.Debug("Input loaded",
		logging.F(logging.FieldUserID, in.User.ID),
		logging.F(logging.FieldCount, len(in.Expenses)),
		logging.F(logging.FieldPeriod, in.Month))
	return in, nil
}

// RunReport loads the input, analyzes it and renders the selected sections to
// the configured output. No sections means the whole dashboard.
func RunReport(ctx context.Context, c *container.Container, flags root.CommonFlags, sections ...report.Section) error {
	if c == nil {
		return ErrNoContainer
	}
	format, err := report.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	in, err := LoadInput(c, flags)
	if err != nil {
		return err
	}

	start := time.Now()
	dash, err := c.GetAnalyzer().Analyze(ctx, in)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return WriteOutput(flags.Output, c.GetLogger(), func(w io.Writer) error {
		if err := c.GetReporter().Render(w, dash, format, sections...); err != nil {
			return err
		}
		c.GetLogger().Debug("Report rendered",
			logging.F(logging.FieldFormat, string(format)),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
		return nil
	})
}

// RunTrend analyzes every month between from and to and renders the trend.
func RunTrend(ctx context.Context, c *container.Container, flags root.CommonFlags, from, to string) error {
	if c == nil {
		return ErrNoContainer
	}
	format, err := report.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	in, err := LoadInput(c, flags)
	if err != nil {
		return err
	}

	aggregator := batch.NewBatchAggregator(c.GetLogger())
	months, err := aggregator.TrendMonths(in.Expenses, from, to)
	if err != nil {
		return err
	}

	summaries, err := aggregator.Trend(ctx, c.GetAnalyzer(), in, months)
	if err != nil {
		return err
	}

	currency := in.User.DefaultCurrency
	if in.Budget != nil && in.Budget.CurrencyCode != "" {
		currency = in.Budget.CurrencyCode
	}
	return WriteOutput(flags.Output, c.GetLogger(), func(w io.Writer) error {
		return c.GetReporter().RenderTrend(w, summaries, currency, format)
	})
}

// WriteOutput runs write against stdout, or against the file at path when
// one is given. Parent directories are created as needed.
func WriteOutput(path string, logger logging.Logger, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logging.OrDiscard(logger).Info("Report written", logging.F(logging.FieldOutputFile, path))
	return nil
}
