package extractor

import (
	"strings"

	"cardsense/cardsense-india/internal/models"
)

var (
	lineCreditMarkers        = []string{"credit", "deposit"}
	descriptionCreditMarkers = []string{"salary", "refund"}
)

// InferDirection guesses whether a line is a credit by keyword sniffing:
// "credit" or "deposit" anywhere on the line, or "salary" or "refund" in the
// description. Everything else is a debit.
//
// This is a heuristic. A merchant named e.g. "Credit Card Bill Pay" will be
// reported as a credit. No confidence is attached to the result.
func InferDirection(line, description string) models.Direction {
	if containsAny(strings.ToLower(line), lineCreditMarkers) ||
		containsAny(strings.ToLower(description), descriptionCreditMarkers) {
		return models.DirectionCredit
	}
	return models.DirectionDebit
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
