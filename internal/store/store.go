// Package store loads the YAML files that configure the analytics: the
// ordered category list and the user's budget.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/split-insights/internal/fileutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCategories is returned when a categories file parses but lists nothing.
var ErrEmptyCategories = errors.New("categories file contains no categories")

// FindConfigFile looks for a configuration file in standard locations: the
// path itself, ./config, and $HOME/.config/split-insights. Directories are
// skipped.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "split-insights", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// CategoryStore loads the ordered category list from YAML.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store reading categoriesFile. An empty name means
// "categories.yaml" in the standard locations.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logging.OrDiscard(logger),
	}
}

// LoadCategories loads categories from the YAML file. Both a top-level
// "categories:" key and a bare list are accepted; the file order is kept. A
// missing file yields an empty list so the caller can fall back to defaults.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Categories file not found", logging.F(logging.FieldInputFile, filename))
		return []models.CategoryConfig{}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		s.logger.Debug("Loaded categories",
			logging.F(logging.FieldCount, len(categoriesConfig.Categories)),
			logging.F(logging.FieldInputFile, filePath))
		return categoriesConfig.Categories, nil
	}

	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%s: %w", filePath, ErrEmptyCategories)
	}

	s.logger.Debug("Loaded categories from bare list",
		logging.F(logging.FieldCount, len(categories)),
		logging.F(logging.FieldInputFile, filePath))
	return categories, nil
}

// SaveCategories writes categories under a top-level "categories:" key,
// creating the parent directory when needed.
func (s *CategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}
	return writeYAML(filename, models.CategoriesConfig{Categories: categories})
}

// BudgetStore loads the budget configuration from YAML.
type BudgetStore struct {
	BudgetFile string
	logger     logging.Logger
}

// NewBudgetStore creates a store reading budgetFile.
func NewBudgetStore(budgetFile string, logger logging.Logger) *BudgetStore {
	return &BudgetStore{
		BudgetFile: budgetFile,
		logger:     logging.OrDiscard(logger),
	}
}

// LoadBudget returns the budget, or nil when no budget file is configured.
// A configured file that does not exist is an error.
func (s *BudgetStore) LoadBudget() (*models.BudgetConfig, error) {
	if s.BudgetFile == "" {
		return nil, nil
	}

	filePath, err := FindConfigFile(s.BudgetFile)
	if err != nil {
		return nil, fmt.Errorf("budget file not found: %s: %w", s.BudgetFile, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading budget file: %w", err)
	}

	var budget models.BudgetConfig
	if err := yaml.Unmarshal(data, &budget); err != nil {
		return nil, fmt.Errorf("error parsing budget file %s: %w", filePath, err)
	}

	s.logger.Debug("Loaded budget",
		logging.F(logging.FieldInputFile, filePath),
		logging.F(logging.FieldCount, len(budget.CategoryLimits)))
	return &budget, nil
}

func writeYAML(filePath string, v interface{}) error {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filePath, err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	return nil
}
