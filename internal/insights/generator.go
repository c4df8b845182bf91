// Package insights composes the analytics outputs into short ranked
// observations. Each insight has its own formula and is skipped on its own when
// its inputs are missing; one skipped insight never blocks another.
package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Icons attached to each insight kind.
const (
	IconTopCategory    = "pie-chart"
	IconLargestExpense = "receipt"
	IconTrendUp        = "trending-up"
	IconTrendDown      = "trending-down"
	IconActiveGroup    = "users"
	IconTopCounterpart = "hand-coins"
	IconAverageShare   = "calculator"
	IconDailyVelocity  = "gauge"
	IconSavingsRate    = "piggy-bank"
)

// Input gathers what the generator reads. Period bounds the current month;
// the month before it is used for the month-over-month comparison.
type Input struct {
	Expenses     []models.Expense
	Income       []models.Income
	Groups       []models.Group
	UserID       int64
	Period       models.Period
	Breakdown    models.CategoryBreakdown
	Friends      []models.FriendBalance
	CurrencyCode string
}

// Generator produces insights.
type Generator struct {
	formatter *currencyutils.Formatter
	logger    logging.Logger
}

// NewGenerator creates a Generator. A nil formatter uses the default locale table.
func NewGenerator(formatter *currencyutils.Formatter, logger logging.Logger) *Generator {
	if formatter == nil {
		formatter = currencyutils.NewDefaultFormatter()
	}
	return &Generator{
		formatter: formatter,
		logger:    logging.ForComponent(logger, "insights"),
	}
}

// share is one countable expense the user owes part of.
type share struct {
	expense models.Expense
	date    time.Time
	amount  decimal.Decimal
}

// Generate returns every insight that applies, in fixed rank order.
func (g *Generator) Generate(in Input) []models.Insight {
	currency := in.CurrencyCode
	if currency == "" {
		currency = dominantCurrency(in.Expenses)
	}

	current := userShares(in.Expenses, in.UserID, in.Period)

	builders := []func() (models.Insight, bool){
		func() (models.Insight, bool) { return g.topCategory(in.Breakdown, currency) },
		func() (models.Insight, bool) { return g.largestExpense(current) },
		func() (models.Insight, bool) { return g.monthOverMonth(in, current) },
		func() (models.Insight, bool) { return g.mostActiveGroup(in) },
		func() (models.Insight, bool) { return g.topCounterpart(in.Friends) },
		func() (models.Insight, bool) { return g.averageShare(current, currency) },
		func() (models.Insight, bool) { return g.dailyVelocity(current, currency) },
		func() (models.Insight, bool) { return g.savingsRate(in, current, currency) },
	}

	out := make([]models.Insight, 0, len(builders))
	for _, build := range builders {
		if insight, ok := build(); ok {
			out = append(out, insight)
		}
	}

	g.logger.Debug("Generated insights",
		logging.F(logging.FieldCount, len(out)),
		logging.F(logging.FieldPeriod, in.Period.String()))

	return out
}

// Top returns at most n insights.
func Top(insights []models.Insight, n int) []models.Insight {
	if n < 0 || n >= len(insights) {
		return insights
	}
	return insights[:n]
}

func (g *Generator) topCategory(b models.CategoryBreakdown, currency string) (models.Insight, bool) {
	top, ok := b.Top()
	if !ok || !b.Total.IsPositive() {
		return models.Insight{}, false
	}
	return models.Insight{
		Kind:  models.InsightTopCategory,
		Icon:  IconTopCategory,
		Title: fmt.Sprintf("%s leads your spending", top.Category),
		Description: fmt.Sprintf("%s is %s of your share this period (%s).",
			top.Category, currencyutils.FormatPercent(top.Percentage), g.formatter.Format(top.Amount, currency)),
	}, true
}

func (g *Generator) largestExpense(current []share) (models.Insight, bool) {
	if len(current) == 0 {
		return models.Insight{}, false
	}
	best := current[0]
	for _, s := range current[1:] {
		if s.amount.GreaterThan(best.amount) {
			best = s
		}
	}
	return models.Insight{
		Kind:  models.InsightLargestExpense,
		Icon:  IconLargestExpense,
		Title: "Largest expense",
		Description: fmt.Sprintf("%s on %s: your share was %s.",
			best.expense.Description, dateutils.ToISODate(best.date), g.formatter.Format(best.amount, best.expense.CurrencyCode)),
	}, true
}

func (g *Generator) monthOverMonth(in Input, current []share) (models.Insight, bool) {
	if in.Period.Start.IsZero() {
		return models.Insight{}, false
	}
	prevTotal := total(userShares(in.Expenses, in.UserID, in.Period.Previous()))
	if !prevTotal.IsPositive() {
		return models.Insight{}, false
	}

	change := total(current).Sub(prevTotal).Div(prevTotal).Mul(decimal.NewFromInt(100)).InexactFloat64()

	insight := models.Insight{Kind: models.InsightMonthOverMonth, Icon: IconTrendUp}
	switch {
	case change > 0:
		insight.Title = fmt.Sprintf("Spending up %s", currencyutils.FormatPercent(change))
		insight.Description = "You spent more than last month."
	case change < 0:
		insight.Icon = IconTrendDown
		insight.Title = fmt.Sprintf("Spending down %s", currencyutils.FormatPercent(math.Abs(change)))
		insight.Description = "You spent less than last month."
	default:
		insight.Title = "Spending unchanged"
		insight.Description = "You spent the same as last month."
	}
	return insight, true
}

func (g *Generator) mostActiveGroup(in Input) (models.Insight, bool) {
	counts := make(map[int64]int)
	for _, e := range in.Expenses {
		if !e.IsCountable() || e.Group() == models.NonGroupID {
			continue
		}
		date, ok := e.ParsedDate()
		if !ok || !in.Period.Contains(date) {
			continue
		}
		counts[e.Group()]++
	}
	if len(counts) == 0 {
		return models.Insight{}, false
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	id := ids[0]

	name := fmt.Sprintf("Group %d", id)
	for _, grp := range in.Groups {
		if grp.ID == id && grp.Name != "" {
			name = grp.Name
			break
		}
	}

	return models.Insight{
		Kind:        models.InsightActiveGroup,
		Icon:        IconActiveGroup,
		Title:       fmt.Sprintf("%s is your most active group", name),
		Description: fmt.Sprintf("%d expenses this period.", counts[id]),
	}, true
}

func (g *Generator) topCounterpart(friends []models.FriendBalance) (models.Insight, bool) {
	var (
		bestName string
		best     models.Balance
		found    bool
	)
	for _, f := range friends {
		for _, b := range owedToUser(f) {
			if !found || b.Amount.GreaterThan(best.Amount) {
				bestName, best, found = f.Name, b, true
			}
		}
	}
	if !found {
		return models.Insight{}, false
	}
	return models.Insight{
		Kind:        models.InsightTopCounterpart,
		Icon:        IconTopCounterpart,
		Title:       fmt.Sprintf("%s owes you the most", bestName),
		Description: fmt.Sprintf("%s is waiting to be settled.", g.formatter.Format(best.Amount, best.CurrencyCode)),
	}, true
}

// owedToUser returns the positive balances of a friend. A friend without a
// per-currency list is judged on the primary balance alone.
func owedToUser(f models.FriendBalance) []models.Balance {
	all := f.AllBalances
	if len(all) == 0 {
		all = []models.Balance{models.NewBalance(f.PrimaryBalanceAmount, f.PrimaryCurrency)}
	}
	out := make([]models.Balance, 0, len(all))
	for _, b := range all {
		if b.Amount.IsPositive() {
			out = append(out, b)
		}
	}
	return out
}

func (g *Generator) averageShare(current []share, currency string) (models.Insight, bool) {
	if len(current) == 0 {
		return models.Insight{}, false
	}
	avg := total(current).Div(decimal.NewFromInt(int64(len(current)))).Round(2)
	return models.Insight{
		Kind:        models.InsightAverageShare,
		Icon:        IconAverageShare,
		Title:       "Average share per expense",
		Description: fmt.Sprintf("%s across %d expenses.", g.formatter.Format(avg, currency), len(current)),
	}, true
}

func (g *Generator) dailyVelocity(current []share, currency string) (models.Insight, bool) {
	if len(current) == 0 {
		return models.Insight{}, false
	}
	first, last := current[0].date, current[0].date
	for _, s := range current[1:] {
		if s.date.Before(first) {
			first = s.date
		}
		if s.date.After(last) {
			last = s.date
		}
	}
	days := math.Max(1, dateutils.DaysBetween(first, last))
	perDay := total(current).Div(decimal.NewFromFloat(days)).Round(2)

	return models.Insight{
		Kind:        models.InsightDailyVelocity,
		Icon:        IconDailyVelocity,
		Title:       "Daily spending pace",
		Description: fmt.Sprintf("About %s per day.", g.formatter.Format(perDay, currency)),
	}, true
}

func (g *Generator) savingsRate(in Input, current []share, currency string) (models.Insight, bool) {
	income := decimal.Zero
	for _, inc := range in.Income {
		date, ok := inc.ParsedDate()
		if !ok || !in.Period.Contains(date) {
			continue
		}
		income = income.Add(inc.Amount)
	}
	if !income.IsPositive() {
		return models.Insight{}, false
	}

	saved := income.Sub(total(current))
	rate := saved.Div(income).Mul(decimal.NewFromInt(100)).InexactFloat64()

	return models.Insight{
		Kind:  models.InsightSavingsRate,
		Icon:  IconSavingsRate,
		Title: fmt.Sprintf("Savings rate %s", currencyutils.FormatPercent(rate)),
		Description: fmt.Sprintf("%s left from %s of income.",
			g.formatter.Format(saved, currency), g.formatter.Format(income, currency)),
	}, true
}

// userShares returns the countable, dated expenses in period where the user
// owes a positive share.
func userShares(expenses []models.Expense, userID int64, period models.Period) []share {
	var out []share
	for _, e := range expenses {
		if !e.IsCountable() {
			continue
		}
		date, ok := e.ParsedDate()
		if !ok || !period.Contains(date) {
			continue
		}
		amount := e.OwedBy(userID)
		if !amount.IsPositive() {
			continue
		}
		out = append(out, share{expense: e, date: date, amount: amount})
	}
	return out
}

func total(shares []share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.amount)
	}
	return sum
}

// dominantCurrency returns the most used currency code, ties broken by code.
func dominantCurrency(expenses []models.Expense) string {
	counts := make(map[string]int)
	for _, e := range expenses {
		if e.CurrencyCode != "" {
			counts[e.CurrencyCode]++
		}
	}
	best := ""
	for code, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && code < best) {
			best = code
		}
	}
	if best == "" {
		return "USD"
	}
	return best
}
