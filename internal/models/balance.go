package models

import (
	"github.com/shopspring/decimal"
)

// Balance is an amount in one currency. Positive means the counterpart owes the
// user, negative means the user owes the counterpart.
type Balance struct {
	CurrencyCode string          `json:"currencyCode" yaml:"currency_code" csv:"currency"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
}

// NewBalance creates a new Balance with the given amount and currency
func NewBalance(amount decimal.Decimal, currency string) Balance {
	return Balance{
		Amount:       amount,
		CurrencyCode: currency,
	}
}

// IsPositive returns true if the counterpart owes the user
func (b Balance) IsPositive() bool {
	return b.Amount.IsPositive()
}

// IsNegative returns true if the user owes the counterpart
func (b Balance) IsNegative() bool {
	return b.Amount.IsNegative()
}

// IsNoise reports whether |amount| is strictly below epsilon.
func (b Balance) IsNoise(epsilon decimal.Decimal) bool {
	return b.Amount.Abs().LessThan(epsilon)
}

// MergeBalances sums balances per currency so that each currency appears at most
// once. The first-seen currency order is preserved.
func MergeBalances(balances []Balance) []Balance {
	if len(balances) == 0 {
		return nil
	}

	index := make(map[string]int, len(balances))
	merged := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if i, ok := index[b.CurrencyCode]; ok {
			merged[i].Amount = merged[i].Amount.Add(b.Amount)
			continue
		}
		index[b.CurrencyCode] = len(merged)
		merged = append(merged, b)
	}
	return merged
}
