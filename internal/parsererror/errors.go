package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the upload pipeline. Typed errors below unwrap to
// these so callers can branch with errors.Is.
var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedFile = errors.New("unsupported file type; upload a PDF or CSV statement")
	ErrNoTransactions  = errors.New("no transactions could be extracted from the statement")
	ErrPersistence     = errors.New("failed to save transactions")
)

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the uploaded file does not
// conform to the format its type claims.
type InvalidFormatError struct {
	FileName       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in file '%s': %s. Expected: %s", e.FileName, e.Msg, e.ExpectedFormat)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// UnsupportedFileError is returned before any parsing when the upload is
// neither a PDF nor a CSV.
type UnsupportedFileError struct {
	FileName    string
	ContentType string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("%v (file '%s', content type '%s')", ErrUnsupportedFile, e.FileName, e.ContentType)
}

func (e *UnsupportedFileError) Unwrap() error {
	return ErrUnsupportedFile
}

// EmptyExtractionError reports an upload that produced no transactions.
// RowErrors carries the CSV row messages, if any, so the caller can show
// why every row was rejected.
type EmptyExtractionError struct {
	FileName  string
	RowErrors []string
}

func (e *EmptyExtractionError) Error() string {
	if len(e.RowErrors) == 0 {
		return ErrNoTransactions.Error()
	}
	return fmt.Sprintf("%v (%d rejected rows: %s)", ErrNoTransactions, len(e.RowErrors), strings.Join(e.RowErrors, "; "))
}

func (e *EmptyExtractionError) Unwrap() error {
	return ErrNoTransactions
}

// PersistenceError wraps a store failure. Rows may have been partially
// written; nothing is rolled back by the pipeline.
type PersistenceError struct {
	UserID string
	Count  int
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%v: %d rows for user %s: %v", ErrPersistence, e.Count, e.UserID, e.Err)
}

// Unwrap exposes both the sentinel and the underlying store error.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
