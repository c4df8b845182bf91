// Package balance aggregates the current user's multi-currency balances across
// groups and friends.
//
// Missing balance lists count as zero and balances below the noise epsilon are
// dropped before any aggregation or sorting. Nothing here returns an error.
package balance

import (
	"sort"

	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregator computes group totals and friend balances.
type Aggregator struct {
	thresholds models.BalanceThresholds
	logger     logging.Logger
}

// NewAggregator creates an Aggregator with the given tolerances.
func NewAggregator(thresholds models.BalanceThresholds, logger logging.Logger) *Aggregator {
	return &Aggregator{
		thresholds: thresholds,
		logger:     logging.ForComponent(logger, "balance"),
	}
}

// Aggregate sums, per currency, what the current user is owed and owes across
// all groups the user is a member of. The primary currency is the one with the
// highest activity (owed plus owes), ties broken by currency code.
func (a *Aggregator) Aggregate(groups []models.Group, currentUserID int64) models.GroupTotals {
	owed := make(map[string]decimal.Decimal)
	owes := make(map[string]decimal.Decimal)
	seen := make(map[string]bool)

	for _, g := range groups {
		member, ok := g.MemberByID(currentUserID)
		if !ok {
			continue
		}
		for _, b := range a.significant(member.Balance) {
			seen[b.CurrencyCode] = true
			if b.IsPositive() {
				owed[b.CurrencyCode] = owed[b.CurrencyCode].Add(b.Amount)
			} else {
				owes[b.CurrencyCode] = owes[b.CurrencyCode].Add(b.Amount.Neg())
			}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	totals := models.GroupTotals{Currencies: make([]models.CurrencyTotal, 0, len(codes))}
	best := decimal.Zero
	for _, code := range codes {
		ct := models.CurrencyTotal{
			CurrencyCode:    code,
			TotalOwedToUser: owed[code],
			TotalUserOwes:   owes[code],
			Net:             owed[code].Sub(owes[code]),
		}
		totals.Currencies = append(totals.Currencies, ct)

		// codes are sorted, so a strict comparison keeps the lowest code on ties
		if totals.PrimaryCurrency == "" || ct.Activity().GreaterThan(best) {
			totals.PrimaryCurrency = code
			best = ct.Activity()
		}
	}

	a.logger.Debug("Aggregated group balances",
		logging.F(logging.FieldUserID, currentUserID),
		logging.F(logging.FieldCount, len(totals.Currencies)),
		logging.F(logging.FieldCurrency, totals.PrimaryCurrency))

	return totals
}

// Friends lists the friends holding at least one balance whose magnitude exceeds
// the friend threshold, sorted by descending primary balance. A friend's primary
// balance is the single entry with the largest magnitude.
func (a *Aggregator) Friends(friends []models.Friend) []models.FriendBalance {
	out := make([]models.FriendBalance, 0, len(friends))

	for _, f := range friends {
		balances := a.significant(f.Balance)
		if !a.hasVisibleBalance(balances) {
			continue
		}

		primary := largestMagnitude(balances)
		name := f.FullName()
		if name == "" {
			name = models.UnknownName
		}

		out = append(out, models.FriendBalance{
			ID:                   f.ID,
			Name:                 name,
			PrimaryBalanceAmount: primary.Amount,
			PrimaryCurrency:      primary.CurrencyCode,
			AllBalances:          balances,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PrimaryBalanceAmount.Equal(out[j].PrimaryBalanceAmount) {
			return out[i].PrimaryBalanceAmount.GreaterThan(out[j].PrimaryBalanceAmount)
		}
		return out[i].ID < out[j].ID
	})

	a.logger.Debug("Filtered friend balances",
		logging.F(logging.FieldCount, len(out)),
		logging.F("friends_total", len(friends)))

	return out
}

// significant merges duplicate currencies and drops noise.
func (a *Aggregator) significant(balances []models.Balance) []models.Balance {
	merged := models.MergeBalances(balances)
	out := make([]models.Balance, 0, len(merged))
	for _, b := range merged {
		if b.IsNoise(a.thresholds.NoiseEpsilon) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (a *Aggregator) hasVisibleBalance(balances []models.Balance) bool {
	for _, b := range balances {
		if b.Amount.Abs().GreaterThan(a.thresholds.FriendThreshold) {
			return true
		}
	}
	return false
}

// largestMagnitude returns the balance with the largest absolute amount, ties
// broken by currency code. balances must not be empty.
func largestMagnitude(balances []models.Balance) models.Balance {
	best := balances[0]
	for _, b := range balances[1:] {
		cmp := b.Amount.Abs().Cmp(best.Amount.Abs())
		if cmp > 0 || (cmp == 0 && b.CurrencyCode < best.CurrencyCode) {
			best = b
		}
	}
	return best
}
