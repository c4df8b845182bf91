package store

import (
	"fjacquet/split-insights/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryStore for testing.
type MockCategoryStore struct {
	Categories          []models.CategoryConfig
	LoadCategoriesError error
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return append([]models.CategoryConfig(nil), m.Categories...), nil
}
