// Package upload sequences extraction, categorization, summarization and
// persistence for one uploaded statement.
package upload

import (
	"context"
	"errors"
	"time"

	"cardsense/cardsense-india/internal/csvparser"
	"cardsense/cardsense-india/internal/extractor"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/parsererror"
	"cardsense/cardsense-india/internal/pdfparser"
	"cardsense/cardsense-india/internal/report"
	"cardsense/cardsense-india/internal/store"
)

// ErrMissingUser is returned when an upload carries no user ID.
var ErrMissingUser = errors.New("user id is required")

// Upload is one file received from a client.
type Upload struct {
	UserID      string
	Filename    string
	ContentType string
	Data        []byte
}

// Extraction is the outcome of parsing an upload, before persistence.
type Extraction struct {
	Kind         Kind
	Text         string // statement text as read; for CSV the raw file
	Transactions []models.ParsedTransaction
	RowErrors    []string
}

// Result is returned for a successfully persisted upload.
type Result struct {
	Inserted     int
	IDs          []string
	Summary      report.Summary
	RowErrors    []string
	Transactions []models.ParsedTransaction
}

// Service processes uploads. It holds no per-request state and may be
// shared between goroutines as long as its collaborators can.
type Service struct {
	pdf       pdfparser.TextExtractor
	extractor *extractor.Extractor
	csv       *csvparser.Parser
	store     store.TransactionStore
	logger    logging.Logger
}

// NewService creates a Service from its collaborators.
func NewService(
	pdf pdfparser.TextExtractor,
	lineExtractor *extractor.Extractor,
	csvParser *csvparser.Parser,
	transactionStore store.TransactionStore,
	logger logging.Logger,
) *Service {
	return &Service{
		pdf:       pdf,
		extractor: lineExtractor,
		csv:       csvParser,
		store:     transactionStore,
		logger:    logging.OrDefault(logger).WithField(logging.FieldComponent, "upload"),
	}
}

// Extract detects the format and parses the upload. It fails with
// parsererror.ErrNoFile, an *UnsupportedFileError, an *InvalidFormatError
// from the PDF reader, or an *EmptyExtractionError.
func (s *Service) Extract(u Upload) (*Extraction, error) {
	if len(u.Data) == 0 {
		return nil, parsererror.ErrNoFile
	}

	kind, err := DetectKind(u.Filename, u.ContentType)
	if err != nil {
		return nil, err
	}

	ex := &Extraction{Kind: kind}
	switch kind {
	case KindPDF:
		text, err := s.pdf.ExtractText(u.Data)
		if err != nil {
			return nil, err
		}
		ex.Text = text
		ex.Transactions = s.extractor.Extract(text)
	case KindCSV:
		ex.Text = string(u.Data)
		parsed := s.csv.Parse(ex.Text)
		ex.Transactions = parsed.Transactions
		ex.RowErrors = parsed.Errors
	}

	if len(ex.Transactions) == 0 {
		return nil, &parsererror.EmptyExtractionError{FileName: u.Filename, RowErrors: ex.RowErrors}
	}
	return ex, nil
}

// Process extracts, summarizes and persists an upload. Row errors from a CSV
// do not fail the upload as long as one transaction was found. A store
// failure returns *parsererror.PersistenceError and no summary; rows the
// store wrote before failing are not removed.
func (s *Service) Process(ctx context.Context, u Upload) (*Result, error) {
	start := time.Now()
	if u.UserID == "" {
		return nil, ErrMissingUser
	}

	logger := s.logger.WithFields(
		logging.F(logging.FieldUserID, u.UserID),
		logging.F(logging.FieldFile, u.Filename),
		logging.F(logging.FieldContentType, u.ContentType))
	logger.Info("Processing statement upload")

	ex, err := s.Extract(u)
	if err != nil {
		logger.WithError(err).Warn("Statement rejected")
		return nil, err
	}

	summary := report.Summarize(ex.Transactions)

	rows := models.NewStatementRows(u.UserID, ex.Kind.Source(), ex.Transactions)
	ids, err := s.store.InsertTransactions(ctx, rows)
	if err != nil {
		logger.WithError(err).Error("Failed to persist transactions")
		return nil, &parsererror.PersistenceError{UserID: u.UserID, Count: len(rows), Err: err}
	}

	logger.Info("Statement processed",
		logging.F(logging.FieldSource, ex.Kind.Source()),
		logging.F(logging.FieldCount, len(ids)),
		logging.F(logging.FieldRowErrors, len(ex.RowErrors)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Result{
		Inserted:     len(ids),
		IDs:          ids,
		Summary:      summary,
		RowErrors:    ex.RowErrors,
		Transactions: ex.Transactions,
	}, nil
}
