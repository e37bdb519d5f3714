// Package extractor turns free-form statement text into transactions, one
// candidate per line.
//
// A line yields a transaction only when it carries both a date-shaped token
// and an amount-shaped token. Lines that do not qualify are skipped without
// error; extraction as a whole never fails.
package extractor

import (
	"regexp"
	"strings"

	"cardsense/cardsense-india/internal/categorizer"
	"cardsense/cardsense-india/internal/currencyutils"
	"cardsense/cardsense-india/internal/dateutils"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"
)

var (
	datePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

	// amountPattern captures the currency marker (1), the number (2) and the
	// fractional digits (3). Without a marker the number must start a word.
	amountPattern = regexp.MustCompile(`(?i)(?:(₹|\brs\.?|\binr)[ \t]*|\b)(\d+(?:,\d+)*(?:\.(\d{1,2}))?)`)
)

// CategorizeFunc assigns a category to a description.
type CategorizeFunc func(description string) models.Category

// Extractor runs line-based extraction with a configurable categorizer.
type Extractor struct {
	categorize CategorizeFunc
	logger     logging.Logger
}

// New creates an Extractor. A nil categorizer means the built-in rules.
func New(c *categorizer.Categorizer, logger logging.Logger) *Extractor {
	categorize := CategorizeFunc(categorizer.Categorize)
	if c != nil {
		categorize = c.Categorize
	}
	return &Extractor{
		categorize: categorize,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "extractor"),
	}
}

// Extract uses the built-in categorization rules.
func Extract(rawText string) []models.ParsedTransaction {
	return New(nil, nil).Extract(rawText)
}

// lineResult is the outcome of one line: a transaction, or a skip with no detail.
type lineResult struct {
	tx models.ParsedTransaction
	ok bool
}

// Extract returns the transactions found in rawText, in line order.
func (e *Extractor) Extract(rawText string) []models.ParsedTransaction {
	lines := splitLines(rawText)

	results := make([]lineResult, 0, len(lines))
	for _, line := range lines {
		results = append(results, e.extractLine(line))
	}

	transactions := make([]models.ParsedTransaction, 0, len(results))
	for _, r := range results {
		if r.ok {
			transactions = append(transactions, r.tx)
		}
	}

	e.logger.Debug("Statement text extracted",
		logging.F(logging.FieldLines, len(lines)),
		logging.F(logging.FieldCount, len(transactions)))
	return transactions
}

// splitLines returns the non-blank lines of text, trimmed.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (e *Extractor) extractLine(line string) lineResult {
	dateSpan := datePattern.FindStringIndex(line)
	if dateSpan == nil {
		return lineResult{}
	}

	amountSpan, amountToken := findAmount(line, dateSpan)
	if amountSpan == nil {
		return lineResult{}
	}

	amount, err := currencyutils.ParseAmount(amountToken)
	if err != nil || !currencyutils.IsPositive(amount) {
		return lineResult{}
	}

	description := strings.TrimSpace(removeSpans(line, dateSpan, amountSpan))

	return lineResult{
		tx: models.ParsedTransaction{
			Date:        dateutils.NormalizeOrRaw(line[dateSpan[0]:dateSpan[1]]),
			Description: description,
			Amount:      amount,
			Direction:   InferDirection(line, description),
			Category:    e.categorize(description),
		},
		ok: true,
	}
}

// dateMask replaces the date before amounts are searched. It is neither a
// word character nor whitespace, so no amount match can reach into it.
const dateMask = "\x00"

// findAmount locates the amount token outside the date span. A candidate with
// a currency marker or exactly two fractional digits is preferred; otherwise
// the last candidate on the line is taken.
func findAmount(line string, dateSpan []int) ([]int, string) {
	masked := line[:dateSpan[0]] + strings.Repeat(dateMask, dateSpan[1]-dateSpan[0]) + line[dateSpan[1]:]

	var matches [][]int
	for _, m := range amountPattern.FindAllStringSubmatchIndex(masked, -1) {
		if m[0] < dateSpan[1] && dateSpan[0] < m[1] {
			continue
		}
		matches = append(matches, m)
	}
	if len(matches) == 0 {
		return nil, ""
	}

	chosen := matches[len(matches)-1]
	for _, m := range matches {
		hasMarker := m[2] >= 0
		hasPaise := m[6] >= 0 && m[7]-m[6] == 2
		if hasMarker || hasPaise {
			chosen = m
			break
		}
	}

	span := []int{chosen[0], chosen[1]}
	return span, line[span[0]:span[1]]
}

// removeSpans cuts two non-overlapping byte ranges out of s.
func removeSpans(s string, a, b []int) string {
	if a[0] > b[0] {
		a, b = b, a
	}
	return s[:a[0]] + s[a[1]:b[0]] + s[b[1]:]
}
