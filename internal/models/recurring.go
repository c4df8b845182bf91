package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringCharge is a detected subscription-like charge.
type RecurringCharge struct {
	Description     string          `json:"description" yaml:"description" csv:"description"`
	Category        string          `json:"category" yaml:"category" csv:"category"`
	Frequency       Frequency       `json:"frequency" yaml:"frequency" csv:"frequency"`
	OccurrenceCount int             `json:"occurrenceCount" yaml:"occurrence_count" csv:"occurrences"`
	AverageAmount   decimal.Decimal `json:"averageAmount" yaml:"average_amount" csv:"average_amount"`
	MonthsAnalyzed  int             `json:"monthsAnalyzed" yaml:"months_analyzed" csv:"months_analyzed"`
	LastDate        time.Time       `json:"lastDate" yaml:"last_date" csv:"last_date"`
}

// NextExpectedDate projects the next charge from the last one.
func (r RecurringCharge) NextExpectedDate() time.Time {
	switch r.Frequency {
	case FrequencyWeekly:
		return r.LastDate.AddDate(0, 0, 7)
	case FrequencyBiWeekly:
		return r.LastDate.AddDate(0, 0, 14)
	default:
		return r.LastDate.AddDate(0, 1, 0)
	}
}

// MonthlyCost returns the charge normalised to a monthly amount.
func (r RecurringCharge) MonthlyCost() decimal.Decimal {
	switch r.Frequency {
	case FrequencyWeekly:
		return r.AverageAmount.Mul(decimal.NewFromInt(52)).Div(decimal.NewFromInt(12)).Round(2)
	case FrequencyBiWeekly:
		return r.AverageAmount.Mul(decimal.NewFromInt(26)).Div(decimal.NewFromInt(12)).Round(2)
	default:
		return r.AverageAmount
	}
}
