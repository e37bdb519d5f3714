package parsererror

import (
	"errors"
	"fmt"
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
			name: "basic parse error",
			err: &ParseError{
				Parser: "CSV",
				Field:  "amount",
				Value:  "invalid",
				Err:    errors.New("invalid decimal"),
			},
			expected: "CSV: failed to parse amount='invalid': invalid decimal",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "PDF",
				Field:  "date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "PDF: failed to parse date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Parser: "CSV", Field: "amount", Value: "invalid", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	cause := errors.New("malformed PDF: missing trailer")
	err := &InvalidFormatError{
		FileName:       "statement.pdf",
		ExpectedFormat: "PDF document",
		Msg:            "could not open PDF",
		Err:            cause,
	}

	assert.Equal(t, "invalid format in file 'statement.pdf': could not open PDF. Expected: PDF document: malformed PDF: missing trailer", err.Error())
	assert.ErrorIs(t, err, cause)

	withoutCause := &InvalidFormatError{FileName: "a.pdf", ExpectedFormat: "PDF document", Msg: "empty"}
	assert.Equal(t, "invalid format in file 'a.pdf': empty. Expected: PDF document", withoutCause.Error())
}

func TestUnsupportedFileError(t *testing.T) {
	err := &UnsupportedFileError{FileName: "photo.png", ContentType: "image/png"}

	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.Contains(t, err.Error(), "photo.png")
	assert.Contains(t, err.Error(), "image/png")
}

func TestEmptyExtractionError(t *testing.T) {
	tests := []struct {
		name     string
		err      *EmptyExtractionError
		expected string
	}{
		{
			name:     "no row errors",
			err:      &EmptyExtractionError{FileName: "s.pdf"},
			expected: "no transactions could be extracted from the statement",
		},
		{
			name:     "with row errors",
			err:      &EmptyExtractionError{FileName: "s.csv", RowErrors: []string{"row 2: missing date", "row 3: missing amount"}},
			expected: "no transactions could be extracted from the statement (2 rejected rows: row 2: missing date; row 3: missing amount)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrNoTransactions)
		})
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("database is locked")
	err := fmt.Errorf("upload failed: %w", &PersistenceError{UserID: "u-1", Count: 3, Err: cause})

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)

	var perr *PersistenceError
	if assert.ErrorAs(t, err, &perr) {
		assert.Equal(t, 3, perr.Count)
	}
	assert.Contains(t, err.Error(), "3 rows for user u-1")
}
