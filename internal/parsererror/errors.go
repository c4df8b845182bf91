// Package parsererror defines the typed errors returned when input files
// cannot be decoded.
package parsererror

import (
	"errors"
	"fmt"
)

// ParseError is a single value that could not be converted. Row is the
// 1-based line of a tabular input, or 0 when the source has no lines.
type ParseError struct {
	Reader string
	Row    int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Reader
	if e.Row > 0 {
		where = fmt.Sprintf("%s row %d", e.Reader, e.Row)
	}
	return fmt.Sprintf("%s: cannot read %s %q: %v", where, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is a file that decoded but lacks something the analysis needs.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError is a file whose layout is not the one expected.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("%s: %s (expected %s)", e.FilePath, e.Msg, e.ExpectedFormat)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// IsInputError reports whether err was caused by unreadable or invalid input
// rather than by an I/O or internal failure.
func IsInputError(err error) bool {
	var (
		parseErr      *ParseError
		validationErr *ValidationError
		formatErr     *InvalidFormatError
	)
	return errors.As(err, &parseErr) || errors.As(err, &validationErr) || errors.As(err, &formatErr)
}
