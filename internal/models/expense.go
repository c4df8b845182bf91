package models

import (
	"strings"
	"time"

	"fjacquet/split-insights/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Share is one participant's part of a shared expense.
type Share struct {
	UserID    int64           `json:"participantId" yaml:"participant_id"`
	PaidShare decimal.Decimal `json:"paidShare" yaml:"paid_share"`
	OwedShare decimal.Decimal `json:"owedShare" yaml:"owed_share"`
}

// Expense is a shared expense record as returned by the bill-splitting service.
// Records are read-only inputs to the analytics packages.
type Expense struct {
	ID                  string          `json:"id" yaml:"id"`
	Description         string          `json:"description" yaml:"description"`
	Date                string          `json:"date" yaml:"date"`
	Cost                decimal.Decimal `json:"cost" yaml:"cost"`
	CurrencyCode        string          `json:"currencyCode" yaml:"currency_code"`
	Category            *string         `json:"category,omitempty" yaml:"category,omitempty"`
	Users               []Share         `json:"users" yaml:"users"`
	GroupID             *int64          `json:"groupId,omitempty" yaml:"group_id,omitempty"`
	Cancelled           bool            `json:"cancelled" yaml:"cancelled"`
	IsRefund            bool            `json:"isRefund" yaml:"is_refund"`
	IsSettlementPayment bool            `json:"isSettlementPayment" yaml:"is_settlement_payment"`
}

// ParsedDate returns the record date. The boolean is false when the date is
// missing or cannot be parsed.
func (e Expense) ParsedDate() (time.Time, bool) {
	t, err := dateutils.ParseDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShareFor returns the share of the given participant.
func (e Expense) ShareFor(userID int64) (Share, bool) {
	for _, s := range e.Users {
		if s.UserID == userID {
			return s, true
		}
	}
	return Share{}, false
}

// OwedBy returns the owed share of the given participant, zero when absent.
func (e Expense) OwedBy(userID int64) decimal.Decimal {
	s, ok := e.ShareFor(userID)
	if !ok {
		return decimal.Zero
	}
	return s.OwedShare
}

// IsCountable reports whether the record counts as spending: it is not
// cancelled, not a refund and not a settlement payment.
func (e Expense) IsCountable() bool {
	return !e.Cancelled && !e.IsRefund && !e.IsSettlementPayment
}

// CategoryLabel returns the category carried by the record, or "" when absent.
func (e Expense) CategoryLabel() string {
	if e.Category == nil {
		return ""
	}
	return strings.TrimSpace(*e.Category)
}

// Group returns the group id, NonGroupID when the expense is not in a group.
func (e Expense) Group() int64 {
	if e.GroupID == nil {
		return NonGroupID
	}
	return *e.GroupID
}
