// Package settleup turns per-group debt graphs into settle-up suggestions for
// the current user.
package settleup

import (
	"fmt"
	"sort"

	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Resolver filters debt edges to those involving the user and resolves names.
type Resolver struct {
	thresholds models.SettleUpThresholds
	logger     logging.Logger
}

// NewResolver creates a Resolver.
func NewResolver(thresholds models.SettleUpThresholds, logger logging.Logger) *Resolver {
	return &Resolver{
		thresholds: thresholds,
		logger:     logging.ForComponent(logger, "settleup"),
	}
}

// Resolve returns every debt edge where user pays or is paid, using each group's
// simplified debts when present and its original debts otherwise. Edges below
// the minimum amount are dropped. Results are sorted by descending amount, then
// group id, then counterpart id.
func (r *Resolver) Resolve(groups []models.Group, friends []models.Friend, user models.User) []models.Suggestion {
	names := newNameResolver(friends, user)
	var out []models.Suggestion

	for _, g := range groups {
		groupName := g.DisplayName()
		if groupName == "" {
			groupName = fmt.Sprintf("Group %d", g.ID)
		}

		for _, edge := range g.Debts() {
			if !edge.Touches(user.ID) || edge.IsSelfEdge() {
				continue
			}
			if edge.Amount.LessThan(r.thresholds.MinAmount) {
				r.logger.Debug("Dropping settle-up noise",
					logging.F(logging.FieldGroupID, g.ID),
					logging.F(logging.FieldAmount, edge.Amount.String()))
				continue
			}

			youPay := edge.From == user.ID
			counterpart := edge.From
			if youPay {
				counterpart = edge.To
			}

			currency := edge.CurrencyCode
			if currency == "" {
				currency = user.DefaultCurrency
			}

			out = append(out, models.Suggestion{
				GroupID:         g.ID,
				GroupName:       groupName,
				FromID:          edge.From,
				FromName:        names.resolve(edge.From, g),
				ToID:            edge.To,
				ToName:          names.resolve(edge.To, g),
				CounterpartID:   counterpart,
				CounterpartName: names.resolve(counterpart, g),
				YouPay:          youPay,
				Amount:          edge.Amount,
				CurrencyCode:    currency,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].CounterpartID < out[j].CounterpartID
	})

	r.logger.Debug("Resolved settle-up suggestions",
		logging.F(logging.FieldUserID, user.ID),
		logging.F(logging.FieldCount, len(out)))

	return out
}

// nameResolver looks ids up in the group roster, then the friend list, then
// the user profile.
type nameResolver struct {
	friends map[int64]string
	user    models.User
}

func newNameResolver(friends []models.Friend, user models.User) *nameResolver {
	idx := make(map[int64]string, len(friends))
	for _, f := range friends {
		if name := f.FullName(); name != "" {
			idx[f.ID] = name
		}
	}
	return &nameResolver{friends: idx, user: user}
}

func (n *nameResolver) resolve(id int64, g models.Group) string {
	if m, ok := g.MemberByID(id); ok {
		if name := m.FullName(); name != "" {
			return name
		}
	}
	if name, ok := n.friends[id]; ok {
		return name
	}
	if id == n.user.ID {
		if name := n.user.FullName(); name != "" {
			return name
		}
	}
	return models.UnknownName
}

// CounterpartNet is the net position with one counterpart across groups.
// Positive balances mean the counterpart owes the user.
type CounterpartNet struct {
	CounterpartID   int64            `json:"counterpartId" yaml:"counterpart_id"`
	CounterpartName string           `json:"counterpartName" yaml:"counterpart_name"`
	Balances        []models.Balance `json:"balances" yaml:"balances"`
}

// NetByCounterpart nets suggestions per counterpart and currency. Currencies that
// net to zero are omitted, as are counterparts left with no balance. The result
// is ordered by counterpart id and each balance list by currency code.
func NetByCounterpart(suggestions []models.Suggestion) []CounterpartNet {
	type key struct {
		id       int64
		currency string
	}
	sums := make(map[key]decimal.Decimal)
	names := make(map[int64]string)

	for _, s := range suggestions {
		amount := s.Amount
		if s.YouPay {
			amount = amount.Neg()
		}
		k := key{id: s.CounterpartID, currency: s.CurrencyCode}
		sums[k] = sums[k].Add(amount)
		if _, ok := names[s.CounterpartID]; !ok {
			names[s.CounterpartID] = s.CounterpartName
		}
	}

	byID := make(map[int64][]models.Balance)
	for k, amount := range sums {
		if amount.IsZero() {
			continue
		}
		byID[k.id] = append(byID[k.id], models.NewBalance(amount, k.currency))
	}

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]CounterpartNet, 0, len(ids))
	for _, id := range ids {
		balances := byID[id]
		sort.Slice(balances, func(i, j int) bool { return balances[i].CurrencyCode < balances[j].CurrencyCode })
		out = append(out, CounterpartNet{
			CounterpartID:   id,
			CounterpartName: names[id],
			Balances:        balances,
		})
	}
	return out
}
