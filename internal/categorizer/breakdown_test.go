package categorizer

import (
	"testing"
	"time"

	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(t *testing.T, desc, date string, owed float64, opts ...func(*models.ExpenseBuilder)) models.Expense {
	t.Helper()
	b := models.NewExpenseBuilder().
		WithDescription(desc).
		WithDate(date).
		WithCost(decimal.NewFromFloat(owed*2), "USD").
		WithShare(1, decimal.Zero, decimal.NewFromFloat(owed)).
		WithShare(2, decimal.NewFromFloat(owed*2), decimal.NewFromFloat(owed))
	for _, opt := range opts {
		opt(b)
	}
	e, err := b.Build()
	require.NoError(t, err)
	return e
}

func TestClassifier_Breakdown(t *testing.T) {
	classifier := NewClassifier(nil, nil)
	feb := models.MonthPeriod(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	expenses := []models.Expense{
		expense(t, "Dinner", "2024-02-03", 25),
		expense(t, "Lunch", "2024-02-10", 10),
		expense(t, "Migros", "2024-02-11", 40),
		expense(t, "Netflix", "2024-02-12", 25, func(b *models.ExpenseBuilder) { b.WithCategory("Streaming") }),
		expense(t, "Dinner", "2024-01-31", 100),
		expense(t, "Cancelled dinner", "2024-02-05", 50, func(b *models.ExpenseBuilder) { b.AsCancelled() }),
		expense(t, "Refund", "2024-02-05", 50, func(b *models.ExpenseBuilder) { b.AsRefund() }),
		expense(t, "Settle up", "2024-02-05", 50, func(b *models.ExpenseBuilder) { b.AsSettlementPayment() }),
		{ID: "undated", Description: "Dinner", Date: "not a date", Users: []models.Share{{UserID: 1, OwedShare: decimal.NewFromInt(5)}}},
		{ID: "other-user", Description: "Dinner", Date: "2024-02-04", Users: []models.Share{{UserID: 2, OwedShare: decimal.NewFromInt(5)}}},
	}

	breakdown := classifier.Breakdown(expenses, 1, feb)

	assert.True(t, breakdown.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 4, breakdown.Count)
	require.Len(t, breakdown.Categories, 3)

	assert.Equal(t, models.CategoryGroceries, breakdown.Categories[0].Category)
	assert.InDelta(t, 40.0, breakdown.Categories[0].Percentage, 1e-9)

	assert.Equal(t, models.CategoryFoodDining, breakdown.Categories[1].Category)
	assert.Equal(t, 2, breakdown.Categories[1].Count)
	assert.True(t, breakdown.Categories[1].Amount.Equal(decimal.NewFromInt(35)))

	assert.Equal(t, "Streaming", breakdown.Categories[2].Category)
}

func TestClassifier_BreakdownTieBreaksByName(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	breakdown := classifier.Breakdown([]models.Expense{
		expense(t, "Taxi", "2024-02-03", 10),
		expense(t, "Amazon", "2024-02-03", 10),
	}, 1, models.Period{})

	require.Len(t, breakdown.Categories, 2)
	assert.Equal(t, models.CategoryShopping, breakdown.Categories[0].Category)
	assert.Equal(t, models.CategoryTransport, breakdown.Categories[1].Category)
}

func TestClassifier_BreakdownEmpty(t *testing.T) {
	breakdown := NewClassifier(nil, nil).Breakdown(nil, 1, models.Period{})

	assert.Empty(t, breakdown.Categories)
	assert.True(t, breakdown.Total.IsZero())
	_, ok := breakdown.Top()
	assert.False(t, ok)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(decimal.NewFromInt(5), decimal.Zero))
	assert.Equal(t, 0.0, Percentage(decimal.NewFromInt(5), decimal.NewFromInt(-1)))
	assert.InDelta(t, 25.0, Percentage(decimal.NewFromInt(5), decimal.NewFromInt(20)), 1e-9)
}
