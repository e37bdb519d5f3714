package csvparser

import "strings"

// columns maps logical fields to record indexes; -1 means absent.
type columns struct {
	date        int
	description int
	amount      int
	debit       int
	credit      int
	kind        int
}

var headerNames = struct {
	date, description, amount, debit, credit, kind []string
}{
	date:        []string{"date", "txn date", "transaction date", "value date", "posting date"},
	description: []string{"description", "narration", "particulars", "details", "merchant", "remarks"},
	amount:      []string{"amount", "transaction amount", "amount (inr)", "amount(inr)"},
	debit:       []string{"debit", "withdrawal", "withdrawal amt.", "withdrawal amount", "dr"},
	credit:      []string{"credit", "deposit", "deposit amt.", "deposit amount", "cr"},
	kind:        []string{"type", "dr/cr", "cr/dr", "transaction type"},
}

// detectHeader treats record as a header when it names a date column and
// either an amount column or a debit/credit column.
func detectHeader(record []string) (*columns, bool) {
	cols := &columns{date: -1, description: -1, amount: -1, debit: -1, credit: -1, kind: -1}
	for i, cell := range record {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case cols.date < 0 && contains(headerNames.date, name):
			cols.date = i
		case cols.description < 0 && contains(headerNames.description, name):
			cols.description = i
		case cols.amount < 0 && contains(headerNames.amount, name):
			cols.amount = i
		case cols.debit < 0 && contains(headerNames.debit, name):
			cols.debit = i
		case cols.credit < 0 && contains(headerNames.credit, name):
			cols.credit = i
		case cols.kind < 0 && contains(headerNames.kind, name):
			cols.kind = i
		}
	}

	if cols.date < 0 {
		return nil, false
	}
	if cols.amount < 0 && cols.debit < 0 && cols.credit < 0 {
		return nil, false
	}
	return cols, true
}

// positionalColumns is used for header-less files: date, description,
// amount and an optional type column.
func positionalColumns() *columns {
	return &columns{date: 0, description: 1, amount: 2, debit: -1, credit: -1, kind: 3}
}

// minFields is the record width needed to reach the date and amount columns.
func (c *columns) minFields() int {
	amountIdx := c.amount
	if amountIdx < 0 {
		amountIdx = c.debit
		if amountIdx < 0 || (c.credit >= 0 && c.credit < amountIdx) {
			amountIdx = c.credit
		}
	}
	return max(c.date, amountIdx) + 1
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
