// Package dateutils provides the date handling shared by the analytics packages:
// ISO-8601 parsing of record dates, month arithmetic and day spans.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted for record dates.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutMonth    = "2006-01"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutISOLocal = "2006-01-02T15:04:05"
)

// CommonFormats is the ordered list of layouts ParseDate tries.
var CommonFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutISOLocal,
	DateLayoutFull,
	DateLayoutISO,
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses an ISO-8601 date or timestamp. The result is always in UTC so that
// day arithmetic does not depend on the zone offsets carried by the source records.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseMonth parses a YYYY-MM string and returns the first instant of that month in UTC.
func ParseMonth(monthStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutMonth, strings.TrimSpace(monthStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse month %q (expected YYYY-MM): %w", monthStr, err)
	}
	return t.UTC(), nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// MonthKey formats the month of date as YYYY-MM.
func MonthKey(date time.Time) string {
	return date.Format(DateLayoutMonth)
}

// CleanDateString trims and collapses whitespace in a date string
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last instant of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// MonthsBefore returns date moved back n calendar months.
func MonthsBefore(date time.Time, n int) time.Time {
	return date.AddDate(0, -n, 0)
}

// DaysBetween returns the signed number of days from a to b, fractional when the
// timestamps carry a time of day.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
