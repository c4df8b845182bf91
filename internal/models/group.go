package models

import "strings"

// Member is a group member with the member's balances inside that group.
type Member struct {
	ID        int64     `json:"id" yaml:"id"`
	FirstName string    `json:"firstName" yaml:"first_name"`
	LastName  string    `json:"lastName" yaml:"last_name"`
	Balance   []Balance `json:"balance" yaml:"balance"`
}

// FullName returns the member's display name.
func (m Member) FullName() string {
	return FullName(m.FirstName, m.LastName)
}

// Group is a bill-splitting group. SimplifiedDebts is nil when the service did
// not return a simplified debt graph; an empty non-nil slice means there is
// nothing left to settle.
type Group struct {
	ID              int64      `json:"id" yaml:"id"`
	Name            string     `json:"name" yaml:"name"`
	Members         []Member   `json:"members" yaml:"members"`
	SimplifiedDebts []DebtEdge `json:"simplifiedDebts" yaml:"simplified_debts"`
	OriginalDebts   []DebtEdge `json:"originalDebts" yaml:"original_debts"`
}

// Debts returns the simplified debts when present, otherwise the original ones.
func (g Group) Debts() []DebtEdge {
	if g.SimplifiedDebts != nil {
		return g.SimplifiedDebts
	}
	return g.OriginalDebts
}

// MemberByID returns the member with the given id.
func (g Group) MemberByID(id int64) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// DisplayName returns the group name, or the non-group label for group 0.
func (g Group) DisplayName() string {
	if g.ID == NonGroupID {
		return NonGroupLabel
	}
	return g.Name
}

// Friend is a counterpart with cross-group balances.
type Friend struct {
	ID        int64     `json:"id" yaml:"id"`
	FirstName string    `json:"firstName" yaml:"first_name"`
	LastName  string    `json:"lastName" yaml:"last_name"`
	Balance   []Balance `json:"balance" yaml:"balance"`
}

// FullName returns the friend's display name.
func (f Friend) FullName() string {
	return FullName(f.FirstName, f.LastName)
}

// User is the current user's profile.
type User struct {
	ID              int64  `json:"id" yaml:"id"`
	FirstName       string `json:"firstName" yaml:"first_name"`
	LastName        string `json:"lastName" yaml:"last_name"`
	DefaultCurrency string `json:"defaultCurrency" yaml:"default_currency"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return FullName(u.FirstName, u.LastName)
}

// FullName joins first and last name, skipping empty parts.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
