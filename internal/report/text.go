package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/insights"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/settleup"

	"github.com/shopspring/decimal"
)

func (g *Generator) renderText(w io.Writer, dash *engine.Dashboard, sections []Section) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	title := "Dashboard"
	if month := dash.Period.Month(); month != "" {
		title = "Dashboard for " + month
	}
	fmt.Fprintf(tw, "%s (%s)\n", title, dash.Period)

	for _, s := range sections {
		fmt.Fprintln(tw)
		switch s {
		case SectionBalances:
			g.textBalances(tw, dash.Balances)
		case SectionFriends:
			g.textFriends(tw, dash.Friends)
		case SectionBreakdown:
			g.textBreakdown(tw, dash.Breakdown, dash.Budget)
		case SectionRecurring:
			g.textRecurring(tw, dash.Recurring)
		case SectionBudget:
			g.textBudget(tw, dash.Budget)
		case SectionSettleUp:
			g.textSettleUp(tw, dash.SettleUp)
		case SectionInsights:
			g.textInsights(tw, dash.Insights)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w, strings.ToUpper(s))
}

func (g *Generator) textBalances(w io.Writer, totals models.GroupTotals) {
	heading(w, "Balances")
	if len(totals.Currencies) == 0 {
		fmt.Fprintln(w, "  All settled up.")
		return
	}
	fmt.Fprintln(w, "  Currency\tOwed to you\tYou owe\tNet\t")
	for _, c := range totals.Currencies {
		marker := ""
		if c.CurrencyCode == totals.PrimaryCurrency {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s%s\t%s\t%s\t%s\t\n", c.CurrencyCode, marker,
			g.money(c.TotalOwedToUser, c.CurrencyCode),
			g.money(c.TotalUserOwes, c.CurrencyCode),
			g.money(c.Net, c.CurrencyCode))
	}
}

func (g *Generator) textFriends(w io.Writer, friends []models.FriendBalance) {
	heading(w, "Friends")
	if len(friends) == 0 {
		fmt.Fprintln(w, "  No open balances with friends.")
		return
	}
	for _, f := range friends {
		direction := "owes you"
		if f.PrimaryBalanceAmount.IsNegative() {
			direction = "you owe"
		}
		line := fmt.Sprintf("  %s\t%s\t%s", f.Name, direction, g.money(f.PrimaryBalanceAmount.Abs(), f.PrimaryCurrency))
		if len(f.AllBalances) > 1 {
			line += fmt.Sprintf(" (+%d more)", len(f.AllBalances)-1)
		}
		fmt.Fprintln(w, line+"\t")
	}
}

func (g *Generator) textBreakdown(w io.Writer, b models.CategoryBreakdown, budget *models.BudgetStatus) {
	heading(w, "Spending by category")
	if len(b.Categories) == 0 {
		fmt.Fprintln(w, "  No spending in this period.")
		return
	}
	currency := ""
	if budget != nil {
		currency = budget.CurrencyCode
	}
	for _, c := range b.Categories {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t\n", c.Category, g.money(c.Amount, currency),
			currencyutils.FormatPercent(c.Percentage), c.Count)
	}
	fmt.Fprintf(w, "  Total\t%s\t\t%d\t\n", g.money(b.Total, currency), b.Count)
}

func (g *Generator) textRecurring(w io.Writer, charges []models.RecurringCharge) {
	heading(w, "Recurring charges")
	if len(charges) == 0 {
		fmt.Fprintln(w, "  No recurring charges detected.")
		return
	}
	for _, r := range charges {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\tnext %s\t\n", r.Description, r.Category, r.Frequency,
			g.money(r.AverageAmount, ""), dateutils.ToISODate(r.NextExpectedDate()))
	}
}

func (g *Generator) textBudget(w io.Writer, status *models.BudgetStatus) {
	heading(w, "Budget")
	if status == nil {
		fmt.Fprintln(w, "  No budget configured.")
		return
	}
	line := func(name string, l models.BudgetLine) {
		limit := "no limit"
		if l.Limit.IsPositive() {
			limit = g.money(l.Limit, status.CurrencyCode)
		}
		fmt.Fprintf(w, "  %s\t%s\tof %s\t%s\t%s\t\n", name, g.money(l.Spent, status.CurrencyCode), limit,
			currencyutils.FormatPercent(l.Percentage), l.Status)
	}
	line("Overall", status.Overall)
	for _, l := range status.SortedCategories() {
		line(l.Category, l)
	}

	alerts := status.Alerts()
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintln(w, "  Alerts")
	for _, l := range alerts {
		left := g.money(l.Remaining, status.CurrencyCode) + " left"
		if l.Remaining.IsNegative() {
			left = "over by " + g.money(l.Remaining.Neg(), status.CurrencyCode)
		}
		fmt.Fprintf(w, "  ! %s\t%s\t%s\t%s\t\n", l.Category, l.Status,
			currencyutils.FormatPercent(l.Percentage), left)
	}
}

func (g *Generator) textSettleUp(w io.Writer, suggestions []models.Suggestion) {
	heading(w, "Settle up")
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "  Nothing to settle.")
		return
	}
	for _, s := range suggestions {
		action := s.CounterpartName + " pays you"
		if s.YouPay {
			action = "You pay " + s.CounterpartName
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t\n", action, g.money(s.Amount, s.CurrencyCode), s.GroupName)
	}

	fmt.Fprintln(w, "  Net per person")
	for _, net := range settleup.NetByCounterpart(suggestions) {
		for _, b := range net.Balances {
			direction := "owes you"
			if b.IsNegative() {
				direction = "you owe"
			}
			fmt.Fprintf(w, "  = %s\t%s\t%s\t\n", net.CounterpartName, direction, g.money(b.Amount.Abs(), b.CurrencyCode))
		}
	}
}

func (g *Generator) textInsights(w io.Writer, list []models.Insight) {
	heading(w, "Insights")
	list = insights.Top(list, g.insightLimit)
	if len(list) == 0 {
		fmt.Fprintln(w, "  Not enough activity for insights yet.")
		return
	}
	for _, in := range list {
		fmt.Fprintf(w, "  [%s] %s: %s\n", in.Icon, in.Title, in.Description)
	}
}

// money formats amount in currency; without a currency the bare amount is
// printed.
func (g *Generator) money(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return g.formatter.Format(amount, currency)
}
