package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func expense(id, desc, date string, cost, owed int64, group int64) models.Expense {
	e := models.Expense{
		ID:           id,
		Description:  desc,
		Date:         date,
		Cost:         dec(cost),
		CurrencyCode: "USD",
		Users: []models.Share{
			{UserID: 1, PaidShare: dec(cost), OwedShare: dec(owed)},
			{UserID: 7, OwedShare: dec(cost - owed)},
		},
	}
	if group != 0 {
		e.GroupID = &group
	}
	return e
}

func sampleInput() Input {
	return Input{
		Expenses: []models.Expense{
			expense("n1", "Netflix Subscription", "2024-01-05", 1200, 1200, 0),
			expense("n2", "Netflix Subscription", "2024-02-04", 1180, 1180, 0),
			expense("n3", "Netflix Subscription", "2024-03-06", 1210, 1210, 0),
			expense("d1", "Dinner", "2024-03-10", 100, 50, 5),
			expense("g1", "Groceries", "2024-03-12", 60, 30, 5),
			expense("t1", "Taxi", "2024-02-12", 20, 10, 5),
		},
		Income: []models.Income{{ID: "s", Date: "2024-03-01", Amount: dec(5000)}},
		Groups: []models.Group{{
			ID:   5,
			Name: "Flat",
			Members: []models.Member{
				{ID: 1, FirstName: "Jo", Balance: []models.Balance{models.NewBalance(dec(450), "USD")}},
				{ID: 7, FirstName: "Sam", Balance: []models.Balance{models.NewBalance(dec(-450), "USD")}},
			},
			SimplifiedDebts: []models.DebtEdge{{From: 7, To: 1, Amount: dec(450), CurrencyCode: "USD"}},
		}},
		Friends: []models.Friend{{ID: 7, FirstName: "Sam", Balance: []models.Balance{models.NewBalance(dec(450), "USD")}}},
		User:    models.User{ID: 1, FirstName: "Jo", DefaultCurrency: "USD"},
		Budget: &models.BudgetConfig{
			OverallLimit:   dec(1500),
			CategoryLimits: map[string]decimal.Decimal{models.CategoryFoodDining: dec(40)},
			CurrencyCode:   "USD",
		},
		Now: now,
	}
}

func newAnalyzer(logger logging.Logger) *Analyzer {
	return NewAnalyzer(models.DefaultThresholds(), nil, currencyutils.NewFormatter("en", nil), logger)
}

func TestAnalyzer_Analyze(t *testing.T) {
	dash, err := newAnalyzer(nil).Analyze(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "2024-03", dash.Period.Month())
	assert.True(t, dash.GeneratedAt.Equal(now))

	assert.Equal(t, "USD", dash.Balances.PrimaryCurrency)
	require.Len(t, dash.Friends, 1)

	assert.True(t, dash.Breakdown.Total.Equal(dec(1290)))
	top, ok := dash.Breakdown.Top()
	require.True(t, ok)
	assert.Equal(t, models.CategoryEntertainment, top.Category)

	require.Len(t, dash.Recurring, 1)
	assert.True(t, dash.Recurring[0].AverageAmount.Equal(dec(1197)))

	require.NotNil(t, dash.Budget)
	assert.Equal(t, models.StatusWarning, dash.Budget.Overall.Status)
	assert.Equal(t, models.StatusOverBudget, dash.Budget.Categories[models.CategoryFoodDining].Status)

	require.Len(t, dash.SettleUp, 1)
	assert.False(t, dash.SettleUp[0].YouPay)

	require.NotEmpty(t, dash.Insights)
	assert.Equal(t, models.InsightTopCategory, dash.Insights[0].Kind)
}

func TestAnalyzer_NoBudget(t *testing.T) {
	in := sampleInput()
	in.Budget = nil

	dash, err := newAnalyzer(nil).Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, dash.Budget)
}

func TestAnalyzer_BudgetCountsUndatedManualEntries(t *testing.T) {
	in := Input{
		Expenses: []models.Expense{expense("rent", "Rent", "2024-03-01", 19500, 19500, 0)},
		User:     models.User{ID: 1, DefaultCurrency: "USD"},
		Budget: &models.BudgetConfig{
			OverallLimit:  dec(20000),
			ManualEntries: []models.ManualEntry{{Amount: dec(1000), Category: models.CategoryOther}},
		},
		Now: now,
	}

	dash, err := newAnalyzer(nil).Analyze(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, dash.Budget)

	overall := dash.Budget.Overall
	assert.True(t, overall.Spent.Equal(dec(20500)), overall.Spent.String())
	assert.InDelta(t, 102.5, overall.Percentage, 1e-9)
	assert.Equal(t, models.StatusOverBudget, overall.Status)
	assert.True(t, overall.Remaining.Equal(dec(-500)), overall.Remaining.String())
}

func TestAnalyzer_PastMonth(t *testing.T) {
	in := sampleInput()
	in.Month = "2024-02"

	dash, err := newAnalyzer(nil).Analyze(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "2024-02", dash.Period.Month())
	assert.True(t, dash.Breakdown.Total.Equal(dec(1190)))
	// only two occurrences exist up to the end of February
	assert.Empty(t, dash.Recurring)
}

func TestAnalyzer_InvalidMonth(t *testing.T) {
	in := sampleInput()
	in.Month = "March"

	_, err := newAnalyzer(nil).Analyze(context.Background(), in)
	assert.Error(t, err)
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAnalyzer(nil).Analyze(ctx, sampleInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_EmptyInput(t *testing.T) {
	dash, err := newAnalyzer(nil).Analyze(context.Background(), Input{Now: now})
	require.NoError(t, err)

	assert.Empty(t, dash.Balances.Currencies)
	assert.Empty(t, dash.Friends)
	assert.Empty(t, dash.Recurring)
	assert.Empty(t, dash.SettleUp)
	assert.Empty(t, dash.Insights)
}

func TestAnalyzer_ConcurrentCalls(t *testing.T) {
	a := newAnalyzer(nil)
	in := sampleInput()

	var wg sync.WaitGroup
	results := make([]*Dashboard, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dash, err := a.Analyze(context.Background(), in)
			assert.NoError(t, err)
			results[i] = dash
		}(i)
	}
	wg.Wait()

	for _, dash := range results[1:] {
		assert.Equal(t, results[0].Recurring, dash.Recurring)
		assert.Equal(t, results[0].SettleUp, dash.SettleUp)
		assert.Equal(t, results[0].Insights, dash.Insights)
	}
}

func TestAnalyzer_Logging(t *testing.T) {
	logger := logging.NewMockLogger()
	_, err := newAnalyzer(logger).Analyze(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.True(t, logger.HasEntry("DEBUG", "Analysis complete"))
	assert.NotNil(t, newAnalyzer(nil).Classifier())
}

func TestExpensesUpTo(t *testing.T) {
	in := []models.Expense{
		{ID: "a", Date: "2024-02-28"},
		{ID: "b", Date: "2024-03-02"},
		{ID: "c", Date: "not a date"},
	}
	out := expensesUpTo(in, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC))
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}

func TestResolvePeriod(t *testing.T) {
	period, asOf, err := resolvePeriod("", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", period.Month())
	assert.True(t, asOf.Equal(now))

	period, asOf, err = resolvePeriod("2023-12", now)
	require.NoError(t, err)
	assert.Equal(t, "2023-12", period.Month())
	assert.True(t, asOf.Equal(period.End))

	_, asOf, err = resolvePeriod("2024-04", now)
	require.NoError(t, err)
	assert.True(t, asOf.Equal(now))
}
