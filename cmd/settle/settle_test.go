package settle_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/cmd/settle"
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
	groupsJSON = `{"groups":[{"id":5,"name":"Flat","members":[
  {"id":1,"firstName":"Jo","balance":[{"currencyCode":"USD","amount":"30"}]},
  {"id":7,"firstName":"Sam","balance":[{"currencyCode":"USD","amount":"-50"}]},
  {"id":8,"firstName":"Al","balance":[{"currencyCode":"USD","amount":"20"}]}],
  "simplifiedDebts":[
    {"from":7,"to":1,"amount":"50","currencyCode":"USD"},
    {"from":1,"to":8,"amount":"20","currencyCode":"USD"}]}]}`
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
		Groups:   write(t, dir, "groups.json", groupsJSON),
		Month:    "2024-03",
		Format:   "text",
		Output:   filepath.Join(dir, "out.txt"),
	}
	return root.SharedFlags.Output
}

func run(t *testing.T, out string) string {
	t.Helper()
	settle.Cmd.SetContext(context.Background())
	require.NoError(t, settle.Cmd.RunE(settle.Cmd, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(data)
}

func TestSettleCommand_Metadata(t *testing.T) {
	assert.Equal(t, "settle", settle.Cmd.Use)
	assert.NotEmpty(t, settle.Cmd.Short)
	assert.NotNil(t, settle.Cmd.RunE)
}

func TestSettleCommand_Errors(t *testing.T) {
	setup(t)
	settle.Cmd.SetContext(context.Background())

	root.SharedFlags.Format = "xml"
	assert.Error(t, settle.Cmd.RunE(settle.Cmd, nil))

	root.SetContainer(nil)
	assert.ErrorIs(t, settle.Cmd.RunE(settle.Cmd, nil), common.ErrNoContainer)
}

func TestSettleCommand_Text(t *testing.T) {
	text := run(t, setup(t))

	assert.Contains(t, text, "SETTLE UP")
	assert.Contains(t, lineWith(t, text, "Sam pays you"), "$ 50.00")
	assert.Contains(t, lineWith(t, text, "You pay Al"), "$ 20.00")

	assert.Contains(t, text, "Net per person")
	sam := lineWith(t, text, "= Sam")
	assert.Contains(t, sam, "owes you")
	assert.Contains(t, sam, "$ 50.00")
	al := lineWith(t, text, "= Al")
	assert.Contains(t, al, "you owe")
	assert.Contains(t, al, "$ 20.00")
}

func TestSettleCommand_NoGroups(t *testing.T) {
	out := setup(t)
	root.SharedFlags.Groups = ""

	text := run(t, out)
	assert.Contains(t, text, "Nothing to settle.")
	assert.NotContains(t, text, "Net per person")
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
