package budget_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/split-insights/cmd/budget"
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/config"
	"fjacquet/split-insights/internal/container"
	"fjacquet/split-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userJSON     = `{"user":{"id":1,"firstName":"Jo","defaultCurrency":"USD"}}`
	expensesJSON = `[
  {"id":"n1","description":"Netflix","date":"2024-01-05","cost":"12","currencyCode":"USD","users":[{"participantId":1,"paidShare":"12","owedShare":"12"}]},
  {"id":"n2","description":"Netflix","date":"2024-02-04","cost":"12","currencyCode":"USD","users":[{"participantId":1,"paidShare":"12","owedShare":"12"}]},
  {"id":"n3","description":"Netflix","date":"2024-03-06","cost":"12","currencyCode":"USD","users":[{"participantId":1,"paidShare":"12","owedShare":"12"}]},
  {"id":"d1","description":"Dinner","date":"2024-03-10","cost":"100","currencyCode":"USD","groupId":5,
   "users":[{"participantId":1,"paidShare":"100","owedShare":"50"},{"participantId":7,"paidShare":"0","owedShare":"50"}]}
]`
	budgetYAML = "overall_limit: 100\ncurrency_code: USD\ncategory_limits:\n  Entertainment: 10\n"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// setup installs a container and flags for a March 2024 run and returns the
// text output path.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg, err := config.LoadConfig(write(t, dir, "config.yaml", "log:\n  level: warn\n"))
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	c = c.WithBudgetFile(write(t, dir, "budget.yaml", budgetYAML))

	savedFlags := root.SharedFlags
	savedContainer := root.GetContainer()
	t.Cleanup(func() {
		root.SharedFlags = savedFlags
		root.SetContainer(savedContainer)
	})

	root.SetContainer(c)
	root.SharedFlags = root.CommonFlags{
		User:     write(t, dir, "user.json", userJSON),
		Expenses: []string{write(t, dir, "expenses.json", expensesJSON)},
		Month:    "2024-03",
		Format:   "text",
		Output:   filepath.Join(dir, "out.txt"),
	}
	return root.SharedFlags.Output
}

func run(t *testing.T, out string) string {
	t.Helper()
	budget.Cmd.SetContext(context.Background())
	require.NoError(t, budget.Cmd.RunE(budget.Cmd, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(data)
}

func TestBudgetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget", budget.Cmd.Use)
	assert.NotEmpty(t, budget.Cmd.Short)
	assert.NotNil(t, budget.Cmd.RunE)
}

func TestBudgetCommand_Errors(t *testing.T) {
	setup(t)
	budget.Cmd.SetContext(context.Background())

	root.SharedFlags.Format = "xml"
	assert.Error(t, budget.Cmd.RunE(budget.Cmd, nil))

	root.SetContainer(nil)
	assert.ErrorIs(t, budget.Cmd.RunE(budget.Cmd, nil), common.ErrNoContainer)
}

func TestBudgetCommand_Text(t *testing.T) {
	text := run(t, setup(t))

	assert.Contains(t, text, "SPENDING BY CATEGORY")
	assert.Contains(t, text, "BUDGET")
	assert.NotContains(t, text, "SETTLE UP")

	overall := lineWith(t, text, "Overall")
	assert.Contains(t, overall, "$ 62.00")
	assert.Contains(t, overall, "on_track")

	assert.Contains(t, text, "  Alerts")
	alert := lineWith(t, text, "! Entertainment")
	assert.Contains(t, alert, "over_budget")
	assert.Contains(t, alert, "over by $ 2.00")
}

func TestBudgetCommand_NoBudget(t *testing.T) {
	out := setup(t)
	cfg, err := config.LoadConfig(write(t, t.TempDir(), "config.yaml", "log:\n  level: warn\n"))
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)

	text := run(t, out)
	assert.Contains(t, text, "No budget configured.")
	assert.NotContains(t, text, "Alerts")
}

func lineWith(t *testing.T, text, substr string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line containing %q in:\n%s", substr, text)
	return ""
}
