package models

import "github.com/shopspring/decimal"

// DayRange is an inclusive range of days between consecutive charges.
type DayRange struct {
	Min float64 `mapstructure:"min" json:"min" yaml:"min"`
	Max float64 `mapstructure:"max" json:"max" yaml:"max"`
}

// Contains reports whether days lies within the inclusive range.
func (r DayRange) Contains(days float64) bool {
	return days >= r.Min && days <= r.Max
}

// RecurringThresholds tunes the recurring charge detector.
type RecurringThresholds struct {
	Monthly              DayRange
	Weekly               DayRange
	BiWeekly             DayRange
	MaxCV                float64
	MinOccurrences       int
	MinWindowOccurrences int
	WindowMonths         int
	MaxResults           int
	MinKeyLength         int
}

// BudgetThresholds holds the budget alert cut points, in percent.
type BudgetThresholds struct {
	WarningPercent  float64
	CriticalPercent float64
	OverPercent     float64
}

// BalanceThresholds tunes the balance aggregator.
type BalanceThresholds struct {
	// NoiseEpsilon drops balances whose magnitude is strictly below it.
	NoiseEpsilon decimal.Decimal
	// FriendThreshold keeps friends with a balance whose magnitude exceeds it.
	FriendThreshold decimal.Decimal
}

// SettleUpThresholds tunes the settle-up resolver.
type SettleUpThresholds struct {
	MinAmount decimal.Decimal
}

// Thresholds gathers every tunable constant of the analytics packages.
type Thresholds struct {
	Recurring RecurringThresholds
	Budget    BudgetThresholds
	Balance   BalanceThresholds
	SettleUp  SettleUpThresholds
}

// DefaultThresholds returns the reference values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Recurring: RecurringThresholds{
			Monthly:              DayRange{Min: 25, Max: 35},
			Weekly:               DayRange{Min: 6, Max: 8},
			BiWeekly:             DayRange{Min: 13, Max: 16},
			MaxCV:                0.30,
			MinOccurrences:       3,
			MinWindowOccurrences: 2,
			WindowMonths:         6,
			MaxResults:           8,
			MinKeyLength:         3,
		},
		Budget: BudgetThresholds{
			WarningPercent:  70,
			CriticalPercent: 90,
			OverPercent:     100,
		},
		Balance: BalanceThresholds{
			NoiseEpsilon:    decimal.RequireFromString("0.01"),
			FriendThreshold: decimal.RequireFromString("0.5"),
		},
		SettleUp: SettleUpThresholds{
			MinAmount: decimal.NewFromInt(1),
		},
	}
}
