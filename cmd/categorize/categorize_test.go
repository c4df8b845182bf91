package categorize_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/split-insights/cmd/categorize"
	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/config"
	"fjacquet/split-insights/internal/container"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	categories := filepath.Join(dir, "categories.yaml")
	require.NoError(t, os.WriteFile(categories, []byte(`categories:
  - name: Coffee
    keywords: [espresso, latte]
  - name: Travel
    keywords: [flight, hotel]
`), 0600))
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("categories:\n  file: "+categories+"\n"), 0600))

	cfg, err := config.LoadConfig(configFile)
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	savedFlags := root.SharedFlags
	savedContainer := root.GetContainer()
	t.Cleanup(func() {
		root.SharedFlags = savedFlags
		root.SetContainer(savedContainer)
		categorize.ListCategories = false
		categorize.ExportPath = ""
	})

	root.SetContainer(c)
	root.SharedFlags.Output = filepath.Join(dir, "out.txt")
	return root.SharedFlags.Output
}

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize [description...]", categorize.Cmd.Use)
	assert.Contains(t, categorize.Cmd.Short, "Categorize")
	assert.NotNil(t, categorize.Cmd.RunE)

	list := categorize.Cmd.Flags().Lookup("list")
	require.NotNil(t, list)
	assert.Equal(t, "l", list.Shorthand)
	assert.Equal(t, "false", list.DefValue)
}

func TestCategorizeCommand_Classify(t *testing.T) {
	out := setup(t)

	require.NoError(t, categorize.Cmd.RunE(categorize.Cmd, []string{"Morning LATTE", "Hotel in Rome", "Bus ticket"}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"Morning LATTE\tCoffee",
		"Hotel in Rome\tTravel",
		"Bus ticket\tOther",
	}, lines)
}

func TestCategorizeCommand_List(t *testing.T) {
	out := setup(t)
	categorize.ListCategories = true

	require.NoError(t, categorize.Cmd.RunE(categorize.Cmd, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Coffee: espresso, latte\nTravel: flight, hotel\n", string(data))
}

func TestCategorizeCommand_Export(t *testing.T) {
	out := setup(t)
	exported := filepath.Join(filepath.Dir(out), "nested", "exported.yaml")
	categorize.ExportPath = exported

	require.NoError(t, categorize.Cmd.RunE(categorize.Cmd, nil))

	cats, err := store.NewCategoryStore(exported, nil).LoadCategories()
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Coffee", cats[0].Name)
	assert.Equal(t, []string{"flight", "hotel"}, cats[1].Keywords)
	assert.NoFileExists(t, out)
}

func TestCategorizeCommand_Errors(t *testing.T) {
	setup(t)
	assert.Error(t, categorize.Cmd.RunE(categorize.Cmd, nil))

	root.SetContainer(nil)
	assert.ErrorIs(t, categorize.Cmd.RunE(categorize.Cmd, []string{"x"}), common.ErrNoContainer)
}
