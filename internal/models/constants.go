package models

// Frequency labels emitted by the recurring charge detector.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// BudgetStatusKind is the tiered alert status of a budget line.
type BudgetStatusKind string

const (
	StatusNoLimit    BudgetStatusKind = "no_limit"
	StatusOverBudget BudgetStatusKind = "over_budget"
	StatusCritical   BudgetStatusKind = "critical"
	StatusWarning    BudgetStatusKind = "warning"
	StatusOnTrack    BudgetStatusKind = "on_track"
)

// IsAlert reports whether the status should be surfaced as an alert.
func (s BudgetStatusKind) IsAlert() bool {
	return s == StatusWarning || s == StatusCritical || s == StatusOverBudget
}

// Default category names, in classifier declaration order.
const (
	CategoryFoodDining    = "Food & Dining"
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transportation"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryUtilities     = "Bills & Utilities"
	CategoryHealth        = "Health & Fitness"
	CategoryTravel        = "Travel"
	CategoryEducation     = "Education"
	CategoryOther         = "Other"
)

// Group bookkeeping.
const (
	// NonGroupID is the id of the bucket holding expenses shared outside any group.
	NonGroupID int64 = 0
	// NonGroupLabel is the display name of the non-group bucket.
	NonGroupLabel = "Non-group expenses"
	// UnknownName is used when a participant id cannot be resolved to a person.
	UnknownName = "Unknown"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
