// Package categorize classifies expense descriptions with the keyword rules
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/split-insights/cmd/common"
	"fjacquet/split-insights/cmd/root"
	"fjacquet/split-insights/internal/categorizer"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/store"

	"github.com/spf13/cobra"
)

// ListCategories prints the configured categories instead of classifying.
var ListCategories bool

// ExportPath writes the active categories to a YAML file instead of classifying.
var ExportPath string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description...]",
	Short: "Categorize expense descriptions",
	Long: `Categorize expense descriptions with the configured keyword rules.

Each argument is classified on its own. Categories are tried in the order they are
declared and the first keyword found in the description wins; nothing matching
falls back to "Other".

Example:
  split-insights categorize "Weekly groceries" "Uber to airport"
  split-insights categorize --list
  split-insights categorize --export config/categories.yaml`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&ListCategories, "list", "l", false, "List the configured categories and keywords")
	Cmd.Flags().StringVar(&ExportPath, "export", "", "Write the active categories to a YAML file")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return common.ErrNoContainer
	}
	classifier := c.GetClassifier()

	if ExportPath != "" {
		if err := store.NewCategoryStore(ExportPath, c.GetLogger()).SaveCategories(classifier.Categories()); err != nil {
			return fmt.Errorf("failed to export categories: %w", err)
		}
		c.GetLogger().Info("Exported categories",
			logging.F(logging.FieldOutputFile, ExportPath),
			logging.F(logging.FieldCount, len(classifier.Categories())))
		return nil
	}

	if ListCategories {
		return common.WriteOutput(root.SharedFlags.Output, c.GetLogger(), func(w io.Writer) error {
			return writeCategories(w, classifier)
		})
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one description is required")
	}

	return common.WriteOutput(root.SharedFlags.Output, c.GetLogger(), func(w io.Writer) error {
		for _, description := range args {
			category := classifier.Classify(description)
			c.GetLogger().Debug("Categorized description",
				logging.F(logging.FieldDescription, description),
				logging.F(logging.FieldCategory, category))
			if _, err := fmt.Fprintf(w, "%s\t%s\n", description, category); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCategories(w io.Writer, classifier *categorizer.Classifier) error {
	for _, cat := range classifier.Categories() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", cat.Name, strings.Join(cat.Keywords, ", ")); err != nil {
			return err
		}
	}
	return nil
}
