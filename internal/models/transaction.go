package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left (debit) or entered (credit) the account.
// It is always inferred, never authoritative ledger data.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Source records which upload path produced a row.
type Source string

const (
	SourcePDF Source = "pdf_upload"
	SourceCSV Source = "csv_upload"
)

// ParsedTransaction is one transaction extracted from an uploaded statement.
// It lives only for the duration of a single upload request.
type ParsedTransaction struct {
	Date        string          `csv:"Date" json:"date"`               // YYYY-MM-DD, or the raw token when it could not be normalized
	Description string          `csv:"Description" json:"description"` // line text with date and amount removed
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`           // always > 0
	Direction   Direction       `csv:"Direction" json:"direction"`
	Category    Category        `csv:"Category" json:"category"`
}

// IsDebit returns true if the transaction is money leaving the account.
func (t ParsedTransaction) IsDebit() bool {
	return t.Direction != DirectionCredit
}

// MarshalJSON renders the amount as a JSON number rather than decimal's quoted string.
func (t ParsedTransaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date        string    `json:"date"`
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Direction   Direction `json:"direction"`
		Category    Category  `json:"category"`
	}{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.InexactFloat64(),
		Direction:   t.Direction,
		Category:    t.Category,
	})
}

// StatementRow is the persisted shape of a transaction in the spending store.
type StatementRow struct {
	ID              string          `csv:"ID" json:"id"`
	UserID          string          `csv:"UserID" json:"user_id"`
	Amount          decimal.Decimal `csv:"Amount" json:"amount"`
	Category        Category        `csv:"Category" json:"category"`
	MerchantName    string          `csv:"MerchantName" json:"merchant_name"`
	TransactionDate string          `csv:"TransactionDate" json:"transaction_date"`
	Description     string          `csv:"Description" json:"description"`
	Source          Source          `csv:"Source" json:"source"`
	CreatedAt       time.Time       `csv:"CreatedAt" json:"created_at"`
}

// NewStatementRow converts a parsed transaction into a row owned by userID.
// The ID is assigned by the store on insert.
func NewStatementRow(userID string, source Source, tx ParsedTransaction) StatementRow {
	return StatementRow{
		UserID:          userID,
		Amount:          tx.Amount,
		Category:        tx.Category,
		MerchantName:    tx.Description,
		TransactionDate: tx.Date,
		Description:     tx.Description,
		Source:          source,
	}
}

// NewStatementRows converts a batch of parsed transactions, preserving order.
func NewStatementRows(userID string, source Source, txs []ParsedTransaction) []StatementRow {
	rows := make([]StatementRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, NewStatementRow(userID, source, tx))
	}
	return rows
}
