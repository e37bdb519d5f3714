// Package store persists extracted transactions into the spending table.
package store

import (
	"context"

	"cardsense/cardsense-india/internal/models"
)

// TableName is the spending table shared with the rest of the application.
const TableName = "spending_transactions"

// TransactionStore appends rows to the spending table. Rows are never
// deduplicated: inserting the same statement twice yields two sets of rows.
type TransactionStore interface {
	// InsertTransactions writes rows and returns their generated IDs in input order.
	InsertTransactions(ctx context.Context, rows []models.StatementRow) ([]string, error)

	// ListTransactions returns up to limit rows for userID, newest first.
	// A limit <= 0 means no limit.
	ListTransactions(ctx context.Context, userID string, limit int) ([]models.StatementRow, error)

	Close() error
}
