// Package report aggregates extracted transactions into the spending summary
// returned to the client, and renders it for the command line.
package report

import (
	"encoding/json"

	"cardsense/cardsense-india/internal/models"

	"github.com/shopspring/decimal"
)

// Summary is the aggregate view of one upload. Total and ByCategory only
// count debits; credits are counted separately.
type Summary struct {
	Total       decimal.Decimal
	TotalCredit decimal.Decimal
	ByCategory  map[models.Category]decimal.Decimal
	Count       int
	Debits      int
	Credits     int
}

// Summarize aggregates txs in a single pass.
func Summarize(txs []models.ParsedTransaction) Summary {
	s := Summary{
		Total:       decimal.Zero,
		TotalCredit: decimal.Zero,
		ByCategory:  make(map[models.Category]decimal.Decimal),
		Count:       len(txs),
	}

	for _, tx := range txs {
		if tx.IsDebit() {
			s.Debits++
			s.Total = s.Total.Add(tx.Amount)
			s.ByCategory[tx.Category] = s.ByCategory[tx.Category].Add(tx.Amount)
			continue
		}
		s.Credits++
		s.TotalCredit = s.TotalCredit.Add(tx.Amount)
	}
	return s
}

// CategoryTotal returns the debit total for c, zero when absent.
func (s Summary) CategoryTotal(c models.Category) decimal.Decimal {
	if v, ok := s.ByCategory[c]; ok {
		return v
	}
	return decimal.Zero
}

type summaryJSON struct {
	Total       float64                     `json:"total"`
	ByCategory  map[models.Category]float64 `json:"byCategory"`
	Count       int                         `json:"count"`
	Debits      int                         `json:"debits"`
	Credits     int                         `json:"credits"`
	TotalCredit float64                     `json:"totalCredit"`
}

// MarshalJSON emits amounts as JSON numbers.
func (s Summary) MarshalJSON() ([]byte, error) {
	out := summaryJSON{
		Total:       s.Total.InexactFloat64(),
		ByCategory:  make(map[models.Category]float64, len(s.ByCategory)),
		Count:       s.Count,
		Debits:      s.Debits,
		Credits:     s.Credits,
		TotalCredit: s.TotalCredit.InexactFloat64(),
	}
	for c, v := range s.ByCategory {
		out.ByCategory[c] = v.InexactFloat64()
	}
	return json.Marshal(out)
}
