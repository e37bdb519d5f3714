package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"
)

// Generator renders summaries in the formats the CLI supports.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{
		logger: logging.OrDefault(logger).WithField(logging.FieldComponent, "report"),
	}
}

// Generate renders s as "json" or "text". Any other format is an error.
func (g *Generator) Generate(s Summary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(s)
	case "text":
		return g.generateText(s)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(s Summary) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON summary")
		return nil, fmt.Errorf("failed to marshal JSON summary: %w", err)
	}
	return out, nil
}

// generateText lists every category with spend, in priority order.
func (g *Generator) generateText(s Summary) ([]byte, error) {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "Transactions\t%d\t\n", s.Count)
	fmt.Fprintf(w, "Debits\t%d\t\n", s.Debits)
	fmt.Fprintf(w, "Credits\t%d\t\n", s.Credits)
	fmt.Fprintf(w, "Total spent\t%s\t\n", s.Total.StringFixed(2))
	fmt.Fprintf(w, "Total received\t%s\t\n", s.TotalCredit.StringFixed(2))
	for _, c := range models.AllCategories() {
		if v, ok := s.ByCategory[c]; ok {
			fmt.Fprintf(w, "  %s\t%s\t\n", c, v.StringFixed(2))
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text summary: %w", err)
	}
	return []byte(sb.String()), nil
}
