package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportFormats lists the summary formats the CLI can render.
var ReportFormats = []string{"text", "json"}

// IsValidStatementFile checks that path is a readable regular file with a
// .pdf or .csv extension.
func IsValidStatementFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".csv":
		return nil
	default:
		return fmt.Errorf("unsupported statement file: %s. Supported extensions are '.pdf', '.csv'", path)
	}
}

// IsValidReportFormat checks if the given summary format is supported.
func IsValidReportFormat(format string) error {
	for _, f := range ReportFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are 'text', 'json'", format)
}

// IsValidOutputPath rejects CSV output paths that point at a directory or
// at the input statement itself.
func IsValidOutputPath(output, input string) error {
	if output == "" {
		return nil
	}
	if strings.ToLower(filepath.Ext(output)) != ".csv" {
		return fmt.Errorf("output file must have a .csv extension: %s", output)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", output)
	}
	if input != "" && filepath.Clean(output) == filepath.Clean(input) {
		return fmt.Errorf("output file would overwrite the input statement: %s", output)
	}
	return nil
}
