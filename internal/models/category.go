package models

import "github.com/shopspring/decimal"

// CategoryConfig is one entry of the ordered category list: a category name and
// the keywords that select it.
type CategoryConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategorySpend is one row of a category breakdown.
type CategorySpend struct {
	Category   string          `json:"category" yaml:"category" csv:"category"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
	Count      int             `json:"count" yaml:"count" csv:"count"`
	Percentage float64         `json:"percentage" yaml:"percentage" csv:"percentage"`
}

// CategoryBreakdown is the per-category spend of the current user over a period,
// sorted by descending amount.
type CategoryBreakdown struct {
	Categories []CategorySpend `json:"categories" yaml:"categories"`
	Total      decimal.Decimal `json:"total" yaml:"total"`
	Count      int             `json:"count" yaml:"count"`
}

// Amounts returns the breakdown as a category -> amount map.
func (b CategoryBreakdown) Amounts() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(b.Categories))
	for _, c := range b.Categories {
		out[c.Category] = c.Amount
	}
	return out
}

// Top returns the largest category, if any.
func (b CategoryBreakdown) Top() (CategorySpend, bool) {
	if len(b.Categories) == 0 {
		return CategorySpend{}, false
	}
	return b.Categories[0], true
}
