// Package csvparser reads transaction rows from bank-exported CSV statements.
//
// Parsing is best-effort: each bad row is recorded as a human-readable
// message and parsing continues with the next row.
package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"cardsense/cardsense-india/internal/categorizer"
	"cardsense/cardsense-india/internal/currencyutils"
	"cardsense/cardsense-india/internal/dateutils"
	"cardsense/cardsense-india/internal/extractor"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"

	"github.com/shopspring/decimal"
)

// Result holds the transactions parsed from a file and one message per
// rejected row, in file order.
type Result struct {
	Transactions []models.ParsedTransaction
	Errors       []string
}

// Parser parses CSV statements.
type Parser struct {
	categorize extractor.CategorizeFunc
	logger     logging.Logger
}

// New creates a Parser. A nil categorizer means the built-in rules.
func New(c *categorizer.Categorizer, logger logging.Logger) *Parser {
	categorize := extractor.CategorizeFunc(categorizer.Categorize)
	if c != nil {
		categorize = c.Categorize
	}
	return &Parser{
		categorize: categorize,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "csvparser"),
	}
}

// Parse uses the built-in categorization rules.
func Parse(text string) Result {
	return New(nil, nil).Parse(text)
}

// headerScanLimit is how many leading non-blank records are searched for a
// header.
const headerScanLimit = 10

// record is one CSV record with its 1-based position in the file.
type record struct {
	row    int
	fields []string
	err    error
}

// Parse reads every record in text. It never fails as a whole.
func (p *Parser) Parse(text string) Result {
	result := Result{
		Transactions: []models.ParsedTransaction{},
		Errors:       []string{},
	}

	records := readRecords(text)
	cols, start := p.findHeader(records)

	for _, rec := range records[start:] {
		if rec.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rec.row, rec.err))
			continue
		}
		if isBlank(rec.fields) {
			continue
		}

		tx, skip, err := p.parseRecord(rec.fields, cols)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rec.row, err))
		case skip:
			continue
		default:
			result.Transactions = append(result.Transactions, tx)
		}
	}

	p.logger.Debug("CSV statement parsed",
		logging.F(logging.FieldCount, len(result.Transactions)),
		logging.F(logging.FieldRowErrors, len(result.Errors)))
	return result
}

func readRecords(text string) []record {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records []record
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records
		}
		records = append(records, record{row: row, fields: fields, err: err})
	}
}

// findHeader returns the detected columns and the index of the first data
// record. Records above a header are preamble and are not parsed. Without a
// header every record is data in positional layout.
func (p *Parser) findHeader(records []record) (*columns, int) {
	scanned := 0
	for i, rec := range records {
		if scanned == headerScanLimit {
			break
		}
		if rec.err != nil || isBlank(rec.fields) {
			continue
		}
		scanned++
		if cols, ok := detectHeader(rec.fields); ok {
			p.logger.Debug("CSV header detected",
				logging.F("columns", strings.Join(rec.fields, "|")),
				logging.F("row", rec.row))
			return cols, i + 1
		}
	}
	return positionalColumns(), 0
}

// parseRecord converts one data record. skip is set for zero-amount rows,
// which are dropped without being reported.
func (p *Parser) parseRecord(record []string, cols *columns) (tx models.ParsedTransaction, skip bool, err error) {
	if len(record) < cols.minFields() {
		return tx, false, fmt.Errorf("expected at least %d columns, got %d", cols.minFields(), len(record))
	}

	rawDate := field(record, cols.date)
	if rawDate == "" {
		return tx, false, errors.New("missing date")
	}
	description := field(record, cols.description)

	amount, direction, err := p.amountAndDirection(record, cols, description)
	if err != nil {
		return tx, false, err
	}
	if amount.IsZero() {
		return tx, true, nil
	}

	return models.ParsedTransaction{
		Date:        dateutils.NormalizeOrRaw(rawDate),
		Description: description,
		Amount:      amount,
		Direction:   direction,
		Category:    p.categorize(description),
	}, false, nil
}

func (p *Parser) amountAndDirection(record []string, cols *columns, description string) (decimal.Decimal, models.Direction, error) {
	if cols.amount < 0 {
		return splitAmount(record, cols)
	}

	raw := field(record, cols.amount)
	if raw == "" {
		return decimal.Zero, "", errors.New("missing amount")
	}
	amount, err := currencyutils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid amount %q", raw)
	}

	if direction, ok := parseType(field(record, cols.kind)); ok {
		return amount.Abs(), direction, nil
	}
	if amount.IsNegative() {
		return amount.Abs(), models.DirectionDebit, nil
	}
	return amount, extractor.InferDirection(strings.Join(record, " "), description), nil
}

// splitAmount handles statements with separate debit and credit columns.
func splitAmount(record []string, cols *columns) (decimal.Decimal, models.Direction, error) {
	debit, err := optionalAmount(field(record, cols.debit))
	if err != nil {
		return decimal.Zero, "", err
	}
	credit, err := optionalAmount(field(record, cols.credit))
	if err != nil {
		return decimal.Zero, "", err
	}

	switch {
	case !debit.IsZero():
		return debit.Abs(), models.DirectionDebit, nil
	case !credit.IsZero():
		return credit.Abs(), models.DirectionCredit, nil
	case field(record, cols.debit) == "" && field(record, cols.credit) == "":
		return decimal.Zero, "", errors.New("missing amount")
	default:
		return decimal.Zero, models.DirectionDebit, nil
	}
}

func optionalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := currencyutils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

func parseType(raw string) (models.Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cr", "credit", "c":
		return models.DirectionCredit, true
	case "dr", "debit", "d":
		return models.DirectionDebit, true
	default:
		return "", false
	}
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
