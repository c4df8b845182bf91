package parsererror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "with row",
			err: &ParseError{
				Reader: "expenses CSV",
				Row:    4,
				Field:  "cost",
				Value:  "abc",
				Err:    errors.New("invalid decimal"),
			},
			expected: `expenses CSV row 4: cannot read cost "abc": invalid decimal`,
		},
		{
			name: "without row",
			err: &ParseError{
				Reader: "income JSON",
				Field:  "date",
				Err:    errors.New("empty date"),
			},
			expected: `income JSON: cannot read date "": empty date`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := &ParseError{Reader: "expenses CSV", Field: "cost", Value: "x", Err: cause}

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "/data/user.json", Reason: "user id is missing"}
	assert.Equal(t, "/data/user.json: user id is missing", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "without cause",
			err: &InvalidFormatError{
				FilePath:       "groups.json",
				ExpectedFormat: "JSON array of groups",
				Msg:            "empty file",
			},
			expected: "groups.json: empty file (expected JSON array of groups)",
		},
		{
			name: "with cause",
			err: &InvalidFormatError{
				FilePath:       "groups.json",
				ExpectedFormat: "JSON array of groups",
				Msg:            "decode failed",
				Err:            errors.New("unexpected EOF"),
			},
			expected: "groups.json: decode failed (expected JSON array of groups): unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorsAs(t *testing.T) {
	cause := errors.New("unexpected EOF")
	wrapped := fmt.Errorf("loading inputs: %w", &InvalidFormatError{FilePath: "f", Err: cause})

	var formatErr *InvalidFormatError
	assert.True(t, errors.As(wrapped, &formatErr))
	assert.Equal(t, "f", formatErr.FilePath)
	assert.ErrorIs(t, wrapped, cause)

	var parseErr *ParseError
	assert.False(t, errors.As(wrapped, &parseErr))
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"parse", &ParseError{Err: errors.New("x")}, true},
		{"validation wrapped", fmt.Errorf("load: %w", &ValidationError{}), true},
		{"format", &InvalidFormatError{}, true},
		{"missing file", fmt.Errorf("open: %w", os.ErrNotExist), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInputError(tt.err))
		})
	}
}
