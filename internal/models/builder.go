package models

import (
	"errors"
	"fmt"

	"fjacquet/split-insights/internal/dateutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseBuilder provides a fluent API for constructing expenses
type ExpenseBuilder struct {
	exp Expense
	err error
}

// NewExpenseBuilder creates a new ExpenseBuilder with default values
func NewExpenseBuilder() *ExpenseBuilder {
	return &ExpenseBuilder{
		exp: Expense{
			CurrencyCode: "USD",
			Cost:         decimal.Zero,
		},
	}
}

// WithID sets the expense ID
func (b *ExpenseBuilder) WithID(id string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.ID = id
	return b
}

// WithDescription sets the expense description
func (b *ExpenseBuilder) WithDescription(description string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.Description = description
	return b
}

// WithDate sets the expense date from an ISO-8601 string
func (b *ExpenseBuilder) WithDate(dateStr string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	if dateStr == "" {
		b.err = errors.New("date cannot be empty")
		return b
	}
	if _, err := dateutils.ParseDate(dateStr); err != nil {
		b.err = err
		return b
	}
	b.exp.Date = dateStr
	return b
}

// WithCost sets the total cost and currency
func (b *ExpenseBuilder) WithCost(cost decimal.Decimal, currency string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.Cost = cost
	if currency != "" {
		b.exp.CurrencyCode = currency
	}
	return b
}

// WithCategory sets the category label
func (b *ExpenseBuilder) WithCategory(category string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.Category = &category
	return b
}

// WithGroup sets the owning group
func (b *ExpenseBuilder) WithGroup(groupID int64) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.GroupID = &groupID
	return b
}

// WithShare appends a participant share
func (b *ExpenseBuilder) WithShare(userID int64, paid, owed decimal.Decimal) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.Users = append(b.exp.Users, Share{UserID: userID, PaidShare: paid, OwedShare: owed})
	return b
}

// AsCancelled marks the expense as cancelled
func (b *ExpenseBuilder) AsCancelled() *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.Cancelled = true
	return b
}

// AsRefund marks the expense as a refund
func (b *ExpenseBuilder) AsRefund() *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.IsRefund = true
	return b
}

// AsSettlementPayment marks the expense as a settle-up payment
func (b *ExpenseBuilder) AsSettlementPayment() *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.exp.IsSettlementPayment = true
	return b
}

// Build validates the expense and returns the final Expense
func (b *ExpenseBuilder) Build() (Expense, error) {
	if b.err != nil {
		return Expense{}, fmt.Errorf("builder error: %w", b.err)
	}

	if b.exp.Date == "" {
		return Expense{}, errors.New("date is required")
	}

	if b.exp.Cost.IsNegative() {
		return Expense{}, errors.New("cost cannot be negative")
	}

	if b.exp.ID == "" {
		b.exp.ID = uuid.New().String()
	}

	out := b.exp
	out.Users = append([]Share(nil), b.exp.Users...)
	return out, nil
}
