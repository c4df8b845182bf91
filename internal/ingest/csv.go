package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fjacquet/split-insights/internal/currencyutils"
	"fjacquet/split-insights/internal/dateutils"
	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// ExpenseRow is one line of a flat ledger export. Amounts and flags are kept
// as text so a bad cell drops only its row.
type ExpenseRow struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Cost        string `csv:"cost"`
	Currency    string `csv:"currency"`
	Category    string `csv:"category"`
	GroupID     string `csv:"group_id"`
	PaidShare   string `csv:"paid_share"`
	OwedShare   string `csv:"owed_share"`
	Cancelled   string `csv:"cancelled"`
	Refund      string `csv:"refund"`
	Payment     string `csv:"payment"`
}

const csvReaderName = "expenses CSV"

// ReadExpensesCSV reads a ledger export. Each row becomes an expense with a
// single share for userID; a blank owed_share means the user owes the whole
// cost and a blank paid_share that the user paid it. Rows without an id get a
// random one. Rows whose amounts or date do not parse, or whose cost is
// negative, are dropped with a warning. A blank currency means USD.
func (r *Reader) ReadExpensesCSV(path string, userID int64) ([]models.Expense, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvReader := csv.NewReader(file)
	csvReader.Comma = r.delimiter
	csvReader.TrimLeadingSpace = true

	var rows []ExpenseRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "CSV with a header row",
			Msg:            "decode failed",
			Err:            err,
		}
	}

	expenses := make([]models.Expense, 0, len(rows))
	for i, row := range rows {
		exp, err := row.toExpense(userID)
		if err != nil {
			var parseErr *parsererror.ParseError
			if errors.As(err, &parseErr) {
				// header is line 1
				parseErr.Row = i + 2
			}
			r.logger.WithError(err).Warn("Dropping CSV row",
				logging.F(logging.FieldInputFile, path))
			continue
		}
		expenses = append(expenses, exp)
	}

	r.logger.Debug("Decoded input file",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldFormat, "csv"),
		logging.F(logging.FieldCount, len(expenses)))
	return expenses, nil
}

func (row ExpenseRow) toExpense(userID int64) (models.Expense, error) {
	cost, err := parseAmount("cost", row.Cost, nil)
	if err != nil {
		return models.Expense{}, err
	}
	paid, err := parseAmount("paid_share", row.PaidShare, &cost)
	if err != nil {
		return models.Expense{}, err
	}
	owed, err := parseAmount("owed_share", row.OwedShare, &cost)
	if err != nil {
		return models.Expense{}, err
	}

	date := normalizeDate(row.Date)
	b := models.NewExpenseBuilder().
		WithID(strings.TrimSpace(row.ID)).
		WithDescription(strings.TrimSpace(row.Description)).
		WithDate(date).
		WithCost(cost, strings.ToUpper(strings.TrimSpace(row.Currency))).
		WithShare(userID, paid, owed)

	if category := strings.TrimSpace(row.Category); category != "" {
		b.WithCategory(category)
	}
	if g := strings.TrimSpace(row.GroupID); g != "" {
		groupID, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return models.Expense{}, &parsererror.ParseError{Reader: csvReaderName, Field: "group_id", Value: g, Err: err}
		}
		b.WithGroup(groupID)
	}
	if parseFlag(row.Cancelled) {
		b.AsCancelled()
	}
	if parseFlag(row.Refund) {
		b.AsRefund()
	}
	if parseFlag(row.Payment) {
		b.AsSettlementPayment()
	}

	exp, err := b.Build()
	if err != nil {
		return models.Expense{}, &parsererror.ParseError{Reader: csvReaderName, Field: "row", Value: date, Err: err}
	}
	return exp, nil
}

// parseAmount parses a cell. A blank cell is fallback when given, and an
// error otherwise.
func parseAmount(field, value string, fallback *decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		if fallback != nil {
			return *fallback, nil
		}
		return decimal.Zero, &parsererror.ParseError{Reader: csvReaderName, Field: field, Value: value, Err: fmt.Errorf("missing amount")}
	}
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Reader: csvReaderName, Field: field, Value: value, Err: err}
	}
	return amount, nil
}

// ledgerDateLayouts are the day-first layouts bank and ledger exports use in
// addition to ISO-8601.
var ledgerDateLayouts = []string{"02.01.2006", "02/01/2006"}

// normalizeDate rewrites recognised dates as ISO-8601 and leaves the rest for
// the analytics to drop.
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if t, err := dateutils.ParseDate(value); err == nil {
		return dateutils.ToISODate(t)
	}
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return dateutils.ToISODate(t)
		}
	}
	return value
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}
