package recurring

import (
	"fmt"
	"testing"
	"time"

	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func exp(id, desc, date string, cost float64) models.Expense {
	return models.Expense{
		ID:           id,
		Description:  desc,
		Date:         date,
		Cost:         decimal.NewFromFloat(cost),
		CurrencyCode: "USD",
	}
}

func newDetector() *Detector {
	return NewDetector(models.DefaultThresholds().Recurring, nil, nil)
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Netflix Subscription", "netflix subscription"},
		{"  Gym   March 2024 ", "gym march"},
		{"Invoice 12345", "invoice"},
		{"123", ""},
		{"Spotify\tPremium\n", "spotify premium"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDescription(tt.input))
		})
	}
}

func TestDetector_NetflixScenario(t *testing.T) {
	food := models.CategoryFoodDining
	first := exp("1", "Netflix Subscription", "2024-01-05", 1200)
	first.Category = &food

	charges := newDetector().Detect([]models.Expense{
		first,
		exp("2", "Netflix Subscription", "2024-02-04", 1180),
		exp("3", "Netflix Subscription", "2024-03-06", 1210),
	}, now)

	require.Len(t, charges, 1)
	c := charges[0]
	assert.Equal(t, "Netflix Subscription", c.Description)
	assert.Equal(t, models.FrequencyMonthly, c.Frequency)
	assert.Equal(t, 3, c.OccurrenceCount)
	assert.True(t, c.AverageAmount.Equal(decimal.NewFromInt(1197)), c.AverageAmount.String())
	assert.Equal(t, 6, c.MonthsAnalyzed)
	assert.True(t, c.LastDate.Equal(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.CategoryEntertainment, c.Category)
}

func TestDetector_Frequencies(t *testing.T) {
	tests := []struct {
		name     string
		dates    []string
		expected models.Frequency
		found    bool
	}{
		{"weekly", []string{"2024-02-01", "2024-02-08", "2024-02-15"}, models.FrequencyWeekly, true},
		{"bi-weekly", []string{"2024-01-04", "2024-01-18", "2024-02-01"}, models.FrequencyBiWeekly, true},
		{"monthly lower bound", []string{"2024-01-01", "2024-01-26", "2024-02-20"}, models.FrequencyMonthly, true},
		{"monthly upper bound", []string{"2023-12-01", "2024-01-05", "2024-02-09"}, models.FrequencyMonthly, true},
		{"between weekly and bi-weekly", []string{"2024-02-01", "2024-02-11", "2024-02-21"}, "", false},
		{"too long", []string{"2023-11-01", "2024-01-01", "2024-03-01"}, "", false},
		{"too short", []string{"2024-02-01", "2024-02-03", "2024-02-05"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var expenses []models.Expense
			for i, d := range tt.dates {
				expenses = append(expenses, exp(fmt.Sprint(i), "Gym membership", d, 50))
			}

			charges := newDetector().Detect(expenses, now)
			if !tt.found {
				assert.Empty(t, charges)
				return
			}
			require.Len(t, charges, 1)
			assert.Equal(t, tt.expected, charges[0].Frequency)
		})
	}
}

func TestDetector_RequiresTwoInWindow(t *testing.T) {
	// three occurrences in total, only one inside the trailing six months
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Magazine", "2023-07-15", 10),
		exp("2", "Magazine", "2023-08-14", 10),
		exp("3", "Magazine", "2024-03-01", 10),
	}, now)

	assert.Empty(t, charges)
}

func TestDetector_RequiresThreeOccurrences(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Magazine", "2024-01-15", 10),
		exp("2", "Magazine", "2024-02-14", 10),
	}, now)

	assert.Empty(t, charges)
}

func TestDetector_WindowCountsOnlyRecent(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Cloud storage", "2023-06-01", 3),
		exp("2", "Cloud storage", "2024-01-01", 3),
		exp("3", "Cloud storage", "2024-01-31", 3),
		exp("4", "Cloud storage", "2024-03-01", 3),
	}, now)

	require.Len(t, charges, 1)
	assert.Equal(t, 3, charges[0].OccurrenceCount)
}

func TestDetector_IgnoresRecordsAfterNow(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Cloud storage", "2024-01-01", 3),
		exp("2", "Cloud storage", "2024-01-31", 3),
		exp("3", "Cloud storage", "2024-03-01", 3),
		exp("4", "Cloud storage", "2024-04-01", 3),
		exp("5", "Cloud storage", "2024-05-01", 3),
	}, now)

	require.Len(t, charges, 1)
	assert.Equal(t, 3, charges[0].OccurrenceCount)
	assert.True(t, charges[0].LastDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDetector_Exclusions(t *testing.T) {
	cancelled := exp("3", "Netflix", "2024-03-05", 15)
	cancelled.Cancelled = true
	refund := exp("4", "Netflix", "2024-03-05", 15)
	refund.IsRefund = true
	payment := exp("5", "Netflix", "2024-03-05", 15)
	payment.IsSettlementPayment = true

	charges := newDetector().Detect([]models.Expense{
		exp("1", "Netflix", "2024-01-05", 15),
		exp("2", "Netflix", "2024-02-05", 15),
		cancelled, refund, payment,
		exp("6", "Netflix", "garbage", 15),
	}, now)

	assert.Empty(t, charges)
}

func TestDetector_ShortKeysDropped(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "TV 1", "2024-01-05", 15),
		exp("2", "TV 2", "2024-02-05", 15),
		exp("3", "TV 3", "2024-03-05", 15),
	}, now)

	assert.Empty(t, charges)
}

func TestDetector_DigitsNormalizedAway(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Phone bill 01/24", "2024-01-05", 40),
		exp("2", "Phone bill 02/24", "2024-02-05", 40),
		exp("3", "Phone bill 03/24", "2024-03-05", 40),
	}, now)

	require.Len(t, charges, 1)
	assert.Equal(t, "Phone bill 03/24", charges[0].Description)
	assert.Equal(t, models.CategoryUtilities, charges[0].Category)
}

func TestDetector_InconsistentAmounts(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Dinner club", "2024-01-05", 10),
		exp("2", "Dinner club", "2024-02-05", 50),
		exp("3", "Dinner club", "2024-03-05", 10),
	}, now)

	assert.Empty(t, charges)
}

func TestDetector_NonPositiveMeanDropped(t *testing.T) {
	charges := newDetector().Detect([]models.Expense{
		exp("1", "Free trial", "2024-01-05", 0),
		exp("2", "Free trial", "2024-02-05", 0),
		exp("3", "Free trial", "2024-03-05", 0),
	}, now)

	assert.Empty(t, charges)
}

func TestDetector_OrderingAndCap(t *testing.T) {
	var expenses []models.Expense
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("Service %c", 'a'+i)
		cost := float64(10 + i)
		for j, d := range []string{"2024-01-05", "2024-02-05", "2024-03-05"} {
			expenses = append(expenses, exp(fmt.Sprintf("%d-%d", i, j), name, d, cost))
		}
	}

	charges := newDetector().Detect(expenses, now)

	require.Len(t, charges, 8)
	assert.Equal(t, "Service j", charges[0].Description)
	assert.Equal(t, "Service c", charges[7].Description)
	for i := 1; i < len(charges); i++ {
		assert.False(t, charges[i].AverageAmount.GreaterThan(charges[i-1].AverageAmount))
	}
}

func TestDetector_TiesOrderedByKey(t *testing.T) {
	var expenses []models.Expense
	for _, name := range []string{"Zeta plan", "Alpha plan"} {
		for j, d := range []string{"2024-01-05", "2024-02-05", "2024-03-05"} {
			expenses = append(expenses, exp(fmt.Sprintf("%s-%d", name, j), name, d, 9))
		}
	}

	charges := newDetector().Detect(expenses, now)
	require.Len(t, charges, 2)
	assert.Equal(t, "Alpha plan", charges[0].Description)
	assert.Equal(t, "Zeta plan", charges[1].Description)
}

func TestDetector_Idempotent(t *testing.T) {
	expenses := []models.Expense{
		exp("1", "Netflix", "2024-01-05", 15),
		exp("2", "Spotify", "2024-01-06", 10),
		exp("3", "Netflix", "2024-02-05", 15),
		exp("4", "Spotify", "2024-02-06", 10),
		exp("5", "Netflix", "2024-03-05", 15),
		exp("6", "Spotify", "2024-03-06", 11),
		exp("7", "Gym", "2024-02-20", 30),
		exp("8", "Gym", "2024-02-27", 30),
		exp("9", "Gym", "2024-03-05", 30),
	}
	snapshot := append([]models.Expense(nil), expenses...)

	d := newDetector()
	first := d.Detect(expenses, now)
	second := d.Detect(expenses, now)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, expenses)
	assert.Len(t, first, 3)
}

func TestDetector_CustomThresholds(t *testing.T) {
	th := models.DefaultThresholds().Recurring
	th.MaxCV = 0.9

	charges := NewDetector(th, nil, nil).Detect([]models.Expense{
		exp("1", "Dinner club", "2024-01-05", 10),
		exp("2", "Dinner club", "2024-02-05", 50),
		exp("3", "Dinner club", "2024-03-05", 10),
	}, now)

	require.Len(t, charges, 1)
	assert.True(t, charges[0].AverageAmount.Equal(decimal.NewFromInt(23)))
}

func TestDetector_Logging(t *testing.T) {
	logger := logging.NewMockLogger()
	NewDetector(models.DefaultThresholds().Recurring, nil, logger).Detect([]models.Expense{
		exp("1", "Dinner club", "2024-01-05", 10),
		exp("2", "Dinner club", "2024-02-05", 50),
		exp("3", "Dinner club", "2024-03-05", 10),
	}, now)

	assert.True(t, logger.HasEntry("DEBUG", "Inconsistent amounts"))
	assert.True(t, logger.HasEntry("DEBUG", "Recurring charge detection complete"))
}

func TestMostFrequent(t *testing.T) {
	assert.Equal(t, "b", mostFrequent([]string{"a", "b", "b"}))
	assert.Equal(t, "b", mostFrequent([]string{"a", "b"}))
	assert.Equal(t, "a", mostFrequent([]string{"a", "b", "a"}))
	assert.Equal(t, "", mostFrequent(nil))
}
