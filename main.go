package main

import (
	"io"
	"os"
	"strings"

	"fjacquet/split-insights/cmd/balances"
	"fjacquet/split-insights/cmd/budget"
	"fjacquet/split-insights/cmd/categorize"
	"fjacquet/split-insights/cmd/dashboard"
	"fjacquet/split-insights/cmd/insights"
	"fjacquet/split-insights/cmd/recurring"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/cmd/settle"
	"fjacquet/split-insights/cmd/trend"
	"fjacquet/split-insights/internal/config"
	"fjacquet/split-insights/internal/parsererror"

	"github.com/sirupsen/logrus"
)

func init() {
	// Load .env before anything logs so LOG_LEVEL applies from the start.
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	config.LoadEnv(silent)

	level, err := logrus.ParseLevel(strings.ToLower(config.GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	root.Log.SetLevel(level)

	root.Init()

	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(balances.Cmd)
	root.Cmd.AddCommand(recurring.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(settle.Cmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(trend.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		if parsererror.IsInputError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
