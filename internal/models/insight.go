package models

// InsightKind identifies an insight formula.
type InsightKind string

const (
	InsightTopCategory    InsightKind = "top_category"
	InsightLargestExpense InsightKind = "largest_expense"
	InsightMonthOverMonth InsightKind = "month_over_month"
	InsightActiveGroup    InsightKind = "most_active_group"
	InsightTopCounterpart InsightKind = "top_counterpart"
	InsightAverageShare   InsightKind = "average_share"
	InsightDailyVelocity  InsightKind = "daily_velocity"
	InsightSavingsRate    InsightKind = "savings_rate"
)

// Insight is a short natural-language observation about the user's spending.
type Insight struct {
	Kind        InsightKind `json:"kind" yaml:"kind"`
	Icon        string      `json:"icon" yaml:"icon"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
}
