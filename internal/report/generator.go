// Package report renders analysis results as text, JSON, YAML or CSV.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/engine"
	"fjacquet/split-insights/internal/insights"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/settleup"

	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported report format: %s", s)
}

// Section is one part of the dashboard.
type Section string

const (
	SectionBalances  Section = "balances"
	SectionFriends   Section = "friends"
	SectionBreakdown Section = "breakdown"
	SectionRecurring Section = "recurring"
	SectionBudget    Section = "budget"
	SectionSettleUp  Section = "settle-up"
	SectionInsights  Section = "insights"
)

// AllSections lists every section in rendering order.
var AllSections = []Section{
	SectionBalances,
	SectionFriends,
	SectionBreakdown,
	SectionRecurring,
	SectionBudget,
	SectionSettleUp,
	SectionInsights,
}

// ErrCSVSection is returned when CSV output is requested for anything other
// than a single tabular section.
var ErrCSVSection = errors.New("csv output needs exactly one of the breakdown, recurring, budget or settle-up sections")

// Generator renders dashboards.
type Generator struct {
	formatter    *currencyutils.Formatter
	delimiter    rune
	insightLimit int
	logger       logging.Logger
}

// NewGenerator creates a Generator. insightLimit caps the insights shown;
// zero or less shows them all. A nil formatter uses the default locale table.
func NewGenerator(formatter *currencyutils.Formatter, delimiter rune, insightLimit int, logger logging.Logger) *Generator {
	if formatter == nil {
		formatter = currencyutils.NewDefaultFormatter()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if insightLimit <= 0 {
		insightLimit = -1
	}
	return &Generator{
		formatter:    formatter,
		delimiter:    delimiter,
		insightLimit: insightLimit,
		logger:       logging.OrDiscard(logger),
	}
}

// Render writes the selected sections of dash to w. No sections means all.
func (g *Generator) Render(w io.Writer, dash *engine.Dashboard, format Format, sections ...Section) error {
	if dash == nil {
		return errors.New("cannot render a nil dashboard")
	}
	if len(sections) == 0 {
		sections = AllSections
	}

	g.logger.Debug("Rendering report",
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(sections)))

	switch format {
	case FormatText, "":
		return g.renderText(w, dash, sections)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(g.view(dash, sections)); err != nil {
			return fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(g.view(dash, sections)); err != nil {
			return fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return encoder.Close()
	case FormatCSV:
		return g.renderCSV(w, dash, sections)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// view is the serialised dashboard; sections that were not selected are nil
// and omitted.
type view struct {
	GeneratedAt time.Time                  `json:"generatedAt" yaml:"generated_at"`
	Period      models.Period              `json:"period" yaml:"period"`
	Balances    *models.GroupTotals        `json:"balances,omitempty" yaml:"balances,omitempty"`
	Friends     *[]models.FriendBalance    `json:"friends,omitempty" yaml:"friends,omitempty"`
	Breakdown   *models.CategoryBreakdown  `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	Recurring   *[]models.RecurringCharge  `json:"recurring,omitempty" yaml:"recurring,omitempty"`
	Budget      *models.BudgetStatus       `json:"budget,omitempty" yaml:"budget,omitempty"`
	SettleUp    *[]models.Suggestion       `json:"settleUp,omitempty" yaml:"settle_up,omitempty"`
	SettleUpNet *[]settleup.CounterpartNet `json:"settleUpNet,omitempty" yaml:"settle_up_net,omitempty"`
	Insights    *[]models.Insight          `json:"insights,omitempty" yaml:"insights,omitempty"`
}

func (g *Generator) view(dash *engine.Dashboard, sections []Section) view {
	v := view{GeneratedAt: dash.GeneratedAt, Period: dash.Period}
	for _, s := range sections {
		switch s {
		case SectionBalances:
			balances := dash.Balances
			balances.Currencies = nonNil(balances.Currencies)
			v.Balances = &balances
		case SectionFriends:
			friends := nonNil(dash.Friends)
			v.Friends = &friends
		case SectionBreakdown:
			breakdown := dash.Breakdown
			breakdown.Categories = nonNil(breakdown.Categories)
			v.Breakdown = &breakdown
		case SectionRecurring:
			recurring := nonNil(dash.Recurring)
			v.Recurring = &recurring
		case SectionBudget:
			v.Budget = dash.Budget
		case SectionSettleUp:
			settleUp := nonNil(dash.SettleUp)
			v.SettleUp = &settleUp
			net := nonNil(settleup.NetByCounterpart(dash.SettleUp))
			v.SettleUpNet = &net
		case SectionInsights:
			top := nonNil(insights.Top(dash.Insights, g.insightLimit))
			v.Insights = &top
		}
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
