// Package pdfparser turns uploaded PDF statements into plain text, one line
// per visual row, for the line-based extractor.
package pdfparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// TextExtractor converts PDF bytes to text. Implementations must not retain data.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// LibraryExtractor implements TextExtractor with github.com/ledongthuc/pdf.
type LibraryExtractor struct {
	logger logging.Logger
}

// NewLibraryExtractor creates a LibraryExtractor.
func NewLibraryExtractor(logger logging.Logger) *LibraryExtractor {
	return &LibraryExtractor{
		logger: logging.OrDefault(logger).WithField(logging.FieldComponent, "pdfparser"),
	}
}

// ExtractText reads the document row by row. When no page yields rows it
// falls back to the reader's plain-text stream. A document that cannot be
// opened returns *parsererror.InvalidFormatError.
func (e *LibraryExtractor) ExtractText(data []byte) (text string, err error) {
	// The library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = invalidPDF("PDF reader crashed", fmt.Errorf("%v", r))
		}
	}()

	if len(data) == 0 {
		return "", invalidPDF("empty document", nil)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", invalidPDF("could not open PDF", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", invalidPDF("PDF has no pages", nil)
	}

	lines := extractByRow(reader, numPages)
	if len(lines) > 0 {
		e.logger.Debug("PDF text extracted by row",
			logging.F("pages", numPages),
			logging.F(logging.FieldLines, len(lines)))
		return strings.Join(lines, "\n"), nil
	}

	plain, err := extractPlainText(reader)
	if err != nil {
		return "", invalidPDF("could not read PDF text", err)
	}
	e.logger.Debug("PDF text extracted as plain text", logging.F("pages", numPages))
	return plain, nil
}

func extractByRow(r *pdf.Reader, numPages int) []string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

func extractPlainText(r *pdf.Reader) (string, error) {
	textReader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func invalidPDF(msg string, err error) error {
	return &parsererror.InvalidFormatError{
		FileName:       "upload",
		ExpectedFormat: "PDF document",
		Msg:            msg,
		Err:            err,
	}
}
