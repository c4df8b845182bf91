package models

import "github.com/shopspring/decimal"

// CurrencyTotal is the user's aggregate position in one currency across all groups.
type CurrencyTotal struct {
	CurrencyCode    string          `json:"currencyCode" yaml:"currency_code" csv:"currency"`
	TotalOwedToUser decimal.Decimal `json:"totalOwedToUser" yaml:"total_owed_to_user" csv:"owed_to_user"`
	TotalUserOwes   decimal.Decimal `json:"totalUserOwes" yaml:"total_user_owes" csv:"user_owes"`
	Net             decimal.Decimal `json:"net" yaml:"net" csv:"net"`
}

// Activity is the total movement in the currency, owed plus owes.
func (c CurrencyTotal) Activity() decimal.Decimal {
	return c.TotalOwedToUser.Add(c.TotalUserOwes)
}

// GroupTotals is the aggregated group balance of the current user. Currencies are
// sorted by code.
type GroupTotals struct {
	Currencies      []CurrencyTotal `json:"currencies" yaml:"currencies"`
	PrimaryCurrency string          `json:"primaryCurrency" yaml:"primary_currency"`
}

// Primary returns the total of the primary currency.
func (g GroupTotals) Primary() (CurrencyTotal, bool) {
	for _, c := range g.Currencies {
		if c.CurrencyCode == g.PrimaryCurrency {
			return c, true
		}
	}
	return CurrencyTotal{}, false
}

// FriendBalance is a friend with a significant outstanding balance.
type FriendBalance struct {
	ID                   int64           `json:"id" yaml:"id"`
	Name                 string          `json:"name" yaml:"name"`
	PrimaryBalanceAmount decimal.Decimal `json:"primaryBalanceAmount" yaml:"primary_balance_amount"`
	PrimaryCurrency      string          `json:"primaryCurrency" yaml:"primary_currency"`
	AllBalances          []Balance       `json:"allBalances" yaml:"all_balances"`
}
