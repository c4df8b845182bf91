// Package ingest decodes the local input files of an analysis into the
// closed record types.
//
// The bill-splitting inputs are JSON, either a bare value or the service's
// response envelope ({"expenses": [...]}, {"user": {...}}). Flat ledger
// exports are CSV. Decoding is strict about the file shape and lenient about
// individual records: the analytics drop records they cannot use.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
	"fjacquet/split-insights/internal/parsererror"
)

// Reader decodes input files.
type Reader struct {
	delimiter rune
	logger    logging.Logger
}

// NewReader creates a Reader. delimiter applies to CSV files; zero means ','.
func NewReader(delimiter rune, logger logging.Logger) *Reader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Reader{
		delimiter: delimiter,
		logger:    logging.OrDiscard(logger),
	}
}

// ReadExpensesJSON reads a JSON array of expenses.
func (r *Reader) ReadExpensesJSON(path string) ([]models.Expense, error) {
	return readJSON[[]models.Expense](r, path, "expenses", "JSON array of expenses")
}

// ReadIncomeJSON reads a JSON array of income records.
func (r *Reader) ReadIncomeJSON(path string) ([]models.Income, error) {
	return readJSON[[]models.Income](r, path, "income", "JSON array of income records")
}

// ReadGroupsJSON reads a JSON array of groups.
func (r *Reader) ReadGroupsJSON(path string) ([]models.Group, error) {
	return readJSON[[]models.Group](r, path, "groups", "JSON array of groups")
}

// ReadFriendsJSON reads a JSON array of friends.
func (r *Reader) ReadFriendsJSON(path string) ([]models.Friend, error) {
	return readJSON[[]models.Friend](r, path, "friends", "JSON array of friends")
}

// ReadUserJSON reads the current user's profile. A profile without an id is
// rejected since every per-user computation keys on it.
func (r *Reader) ReadUserJSON(path string) (models.User, error) {
	user, err := readJSON[models.User](r, path, "user", "JSON user object")
	if err != nil {
		return models.User{}, err
	}
	if user.ID == 0 {
		return models.User{}, &parsererror.ValidationError{FilePath: path, Reason: "user id is missing"}
	}
	return user, nil
}

func readJSON[T any](r *Reader, path, envelope, expected string) (T, error) {
	var out T

	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("error reading %s: %w", path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return out, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: expected, Msg: "empty file"}
	}

	payload := unwrapEnvelope(data, envelope)
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: expected,
			Msg:            "decode failed",
			Err:            err,
		}
	}

	r.logger.Debug("Decoded input file",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldFormat, "json"))
	return out, nil
}

// unwrapEnvelope returns the value under key when data is an object holding
// it, and data unchanged otherwise.
func unwrapEnvelope(data []byte, key string) []byte {
	if len(data) == 0 || data[0] != '{' {
		return data
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return data
	}
	if inner, ok := envelope[key]; ok {
		return inner
	}
	return data
}
