package models

import (
	"fmt"
	"time"

	"fjacquet/split-insights/internal/dateutils"
)

// Period is an inclusive time window. A zero Start or End leaves that side open.
type Period struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// MonthPeriod returns the calendar month containing t.
func MonthPeriod(t time.Time) Period {
	return Period{
		Start: dateutils.StartOfMonth(t),
		End:   dateutils.EndOfMonth(t),
	}
}

// Contains checks whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && t.After(p.End) {
		return false
	}
	return true
}

// IsOpen reports whether the period has no bounds at all.
func (p Period) IsOpen() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Previous returns the calendar month before the period's start month.
func (p Period) Previous() Period {
	return MonthPeriod(dateutils.MonthsBefore(dateutils.StartOfMonth(p.Start), 1))
}

// Month returns the YYYY-MM key of the period start.
func (p Period) Month() string {
	if p.Start.IsZero() {
		return ""
	}
	return dateutils.MonthKey(p.Start)
}

func (p Period) String() string {
	if p.IsOpen() {
		return "all time"
	}
	return fmt.Sprintf("%s to %s", dateutils.ToISODate(p.Start), dateutils.ToISODate(p.End))
}
