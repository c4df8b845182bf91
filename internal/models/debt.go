package models

import "github.com/shopspring/decimal"

// DebtEdge says that From owes To the given amount.
type DebtEdge struct {
	From         int64           `json:"from" yaml:"from"`
	To           int64           `json:"to" yaml:"to"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	CurrencyCode string          `json:"currencyCode" yaml:"currency_code"`
}

// Touches reports whether the edge involves the given participant.
func (d DebtEdge) Touches(userID int64) bool {
	return d.From == userID || d.To == userID
}

// IsSelfEdge reports whether both ends are the same participant.
func (d DebtEdge) IsSelfEdge() bool {
	return d.From == d.To
}

// Suggestion is a settle-up action involving the current user.
type Suggestion struct {
	GroupID         int64           `json:"groupId" yaml:"group_id" csv:"group_id"`
	GroupName       string          `json:"groupName" yaml:"group_name" csv:"group_name"`
	FromID          int64           `json:"fromId" yaml:"from_id" csv:"from_id"`
	FromName        string          `json:"fromName" yaml:"from_name" csv:"from_name"`
	ToID            int64           `json:"toId" yaml:"to_id" csv:"to_id"`
	ToName          string          `json:"toName" yaml:"to_name" csv:"to_name"`
	CounterpartID   int64           `json:"counterpartId" yaml:"counterpart_id" csv:"counterpart_id"`
	CounterpartName string          `json:"counterpartName" yaml:"counterpart_name" csv:"counterpart_name"`
	YouPay          bool            `json:"youPay" yaml:"you_pay" csv:"you_pay"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
	CurrencyCode    string          `json:"currencyCode" yaml:"currency_code" csv:"currency"`
}
