package upload

import (
	"mime"
	"path/filepath"
	"strings"

	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/parsererror"
)

// Kind is the statement format of an upload.
type Kind string

const (
	KindPDF Kind = "pdf"
	KindCSV Kind = "csv"
)

// Source returns the persisted source label for k.
func (k Kind) Source() models.Source {
	if k == KindPDF {
		return models.SourcePDF
	}
	return models.SourceCSV
}

var mimeKinds = map[string]Kind{
	"application/pdf":          KindPDF,
	"text/csv":                 KindCSV,
	"application/csv":          KindCSV,
	"application/vnd.ms-excel": KindCSV,
}

var extensionKinds = map[string]Kind{
	".pdf": KindPDF,
	".csv": KindCSV,
}

// DetectKind decides the format from the declared MIME type, then from the
// file extension. Anything else is *parsererror.UnsupportedFileError.
func DetectKind(filename, contentType string) (Kind, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if kind, ok := mimeKinds[strings.ToLower(mediaType)]; ok {
			return kind, nil
		}
	}
	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(filename))]; ok {
		return kind, nil
	}
	return "", &parsererror.UnsupportedFileError{FileName: filename, ContentType: contentType}
}
