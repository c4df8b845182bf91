package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldCategory    = "category"
	FieldKeyword     = "keyword"
	FieldCurrency    = "currency"
	FieldAmount      = "amount"
	FieldGroupID     = "group_id"
	FieldUserID      = "user_id"
	FieldFriendID    = "friend_id"
	FieldExpenseID   = "expense_id"
	FieldDescription = "description"
	FieldFrequency   = "frequency"
	FieldReason      = "reason"
	FieldPeriod      = "period"
	FieldFormat      = "format"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
