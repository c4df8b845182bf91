package models

import (
	"time"

	"fjacquet/split-insights/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Income is a personal ledger income record.
type Income struct {
	ID        string          `json:"id" yaml:"id" csv:"id"`
	Date      string          `json:"date" yaml:"date" csv:"date"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
	Source    string          `json:"source" yaml:"source" csv:"source"`
	Category  string          `json:"category" yaml:"category" csv:"category"`
	Recurring bool            `json:"recurring" yaml:"recurring" csv:"recurring"`
}

// ParsedDate returns the record date. The boolean is false when the date is
// missing or cannot be parsed.
func (i Income) ParsedDate() (time.Time, bool) {
	t, err := dateutils.ParseDate(i.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
