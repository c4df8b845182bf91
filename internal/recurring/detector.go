// Package recurring detects subscription-like charges in an expense history.
//
// The detector is heuristic: irregular billing or inconsistent pricing produce
// false negatives, which is accepted. Records with unparseable dates are
// skipped silently.
package recurring

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/split-insights/internal/categorizer"
	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
)

var (
	digits     = regexp.MustCompile(`[0-9]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeDescription lower-cases s, strips digits and collapses whitespace.
// Descriptions that differ only by dates or invoice numbers share a key.
func NormalizeDescription(s string) string {
	s = strings.ToLower(s)
	s = digits.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

type occurrence struct {
	expense models.Expense
	date    time.Time
}

// Detector finds recurring charges.
type Detector struct {
	thresholds models.RecurringThresholds
	classifier *categorizer.Classifier
	logger     logging.Logger
}

// NewDetector creates a Detector. A nil classifier uses the default categories.
func NewDetector(thresholds models.RecurringThresholds, classifier *categorizer.Classifier, logger logging.Logger) *Detector {
	if classifier == nil {
		classifier = categorizer.NewClassifier(nil, logger)
	}
	return &Detector{
		thresholds: thresholds,
		classifier: classifier,
		logger:     logging.ForComponent(logger, "recurring"),
	}
}

// Detect returns the recurring charges found in expenses as of now, sorted by
// descending average amount and capped at the configured maximum.
func (d *Detector) Detect(expenses []models.Expense, now time.Time) []models.RecurringCharge {
	groups := d.group(expenses)
	cutoff := dateutils.MonthsBefore(now, d.thresholds.WindowMonths)

	type keyed struct {
		key    string
		charge models.RecurringCharge
	}
	var found []keyed

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		charge, ok := d.evaluate(key, groups[key], cutoff, now)
		if ok {
			found = append(found, keyed{key: key, charge: charge})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i].charge.AverageAmount, found[j].charge.AverageAmount
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return found[i].key < found[j].key
	})

	if d.thresholds.MaxResults > 0 && len(found) > d.thresholds.MaxResults {
		found = found[:d.thresholds.MaxResults]
	}

	out := make([]models.RecurringCharge, len(found))
	for i, k := range found {
		out[i] = k.charge
	}

	d.logger.Debug("Recurring charge detection complete",
		logging.F(logging.FieldCount, len(out)),
		logging.F("candidates", len(groups)))

	return out
}

// group buckets eligible expenses by normalized description.
func (d *Detector) group(expenses []models.Expense) map[string][]occurrence {
	groups := make(map[string][]occurrence)
	for _, e := range expenses {
		if e.Cancelled || e.IsRefund || e.IsSettlementPayment {
			continue
		}
		key := NormalizeDescription(e.Description)
		if utf8.RuneCountInString(key) < d.thresholds.MinKeyLength {
			continue
		}
		date, ok := e.ParsedDate()
		if !ok {
			continue
		}
		groups[key] = append(groups[key], occurrence{expense: e, date: date})
	}
	return groups
}

func (d *Detector) evaluate(key string, all []occurrence, cutoff, now time.Time) (models.RecurringCharge, bool) {
	log := d.logger.WithField(logging.FieldDescription, key)

	if len(all) < d.thresholds.MinOccurrences {
		return models.RecurringCharge{}, false
	}

	window := make([]occurrence, 0, len(all))
	for _, o := range all {
		if !o.date.Before(cutoff) && !o.date.After(now) {
			window = append(window, o)
		}
	}
	if len(window) < d.thresholds.MinWindowOccurrences || len(window) < 2 {
		log.Debug("Too few occurrences in window", logging.F(logging.FieldCount, len(window)))
		return models.RecurringCharge{}, false
	}

	sort.SliceStable(window, func(i, j int) bool {
		if !window[i].date.Equal(window[j].date) {
			return window[i].date.Before(window[j].date)
		}
		return window[i].expense.ID < window[j].expense.ID
	})

	gapSum := 0.0
	for i := 1; i < len(window); i++ {
		gapSum += dateutils.DaysBetween(window[i-1].date, window[i].date)
	}
	meanGap := gapSum / float64(len(window)-1)

	freq, ok := d.classify(meanGap)
	if !ok {
		log.Debug("Irregular cadence", logging.F("mean_gap_days", meanGap))
		return models.RecurringCharge{}, false
	}

	amounts := make([]decimal.Decimal, len(window))
	for i, o := range window {
		amounts[i] = o.expense.Cost
	}
	mean := decimal.Avg(amounts[0], amounts[1:]...)
	if !mean.IsPositive() {
		return models.RecurringCharge{}, false
	}
	cv := coefficientOfVariation(amounts, mean)
	if cv > d.thresholds.MaxCV {
		log.Debug("Inconsistent amounts", logging.F("cv", cv))
		return models.RecurringCharge{}, false
	}

	descriptions := make([]string, len(window))
	categories := make([]string, len(window))
	for i, o := range window {
		descriptions[i] = strings.TrimSpace(o.expense.Description)
		categories[i] = d.classifier.CategoryOf(o.expense)
	}

	charge := models.RecurringCharge{
		Description:     mostFrequent(descriptions),
		Category:        mostFrequent(categories),
		Frequency:       freq,
		OccurrenceCount: len(window),
		AverageAmount:   mean.Round(0),
		MonthsAnalyzed:  d.thresholds.WindowMonths,
		LastDate:        window[len(window)-1].date,
	}

	log.Debug("Recurring charge detected",
		logging.F(logging.FieldFrequency, string(freq)),
		logging.F(logging.FieldAmount, charge.AverageAmount.String()))

	return charge, true
}

// classify maps a mean gap in days to a frequency.
func (d *Detector) classify(meanGap float64) (models.Frequency, bool) {
	switch {
	case d.thresholds.Monthly.Contains(meanGap):
		return models.FrequencyMonthly, true
	case d.thresholds.Weekly.Contains(meanGap):
		return models.FrequencyWeekly, true
	case d.thresholds.BiWeekly.Contains(meanGap):
		return models.FrequencyBiWeekly, true
	default:
		return "", false
	}
}

// coefficientOfVariation returns the population standard deviation divided by
// mean. mean must be positive.
func coefficientOfVariation(amounts []decimal.Decimal, mean decimal.Decimal) float64 {
	m := mean.InexactFloat64()
	variance := 0.0
	for _, a := range amounts {
		diff := a.InexactFloat64() - m
		variance += diff * diff
	}
	variance /= float64(len(amounts))
	return math.Sqrt(variance) / m
}

// mostFrequent returns the most common value; ties go to the value seen last.
// values are in chronological order.
func mostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	last := make(map[string]int, len(values))
	for i, v := range values {
		counts[v]++
		last[v] = i
	}

	best, bestCount, bestLast := "", 0, -1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && last[v] > bestLast) {
			best, bestCount, bestLast = v, n, last[v]
		}
	}
	return best
}
