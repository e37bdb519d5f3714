package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS spending_transactions (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	amount           TEXT NOT NULL,
	category         TEXT NOT NULL,
	merchant_name    TEXT NOT NULL,
	transaction_date TEXT NOT NULL,
	description      TEXT NOT NULL,
	source           TEXT NOT NULL,
	created_at       TIMESTAMP NOT NULL
)`

const createIndexStatement = `
CREATE INDEX IF NOT EXISTS idx_spending_transactions_user ON spending_transactions (user_id, created_at)`

// SQLiteStore is a TransactionStore backed by modernc.org/sqlite.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and ensures the
// spending table exists. Use ":memory:" for a throwaway database.
func Open(path string, logger logging.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{createTableStatement, createIndexStatement} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create %s table: %w", TableName, err)
		}
	}

	s := &SQLiteStore{
		db:     db,
		logger: logging.OrDefault(logger).WithField(logging.FieldComponent, "store"),
		now:    time.Now,
	}
	s.logger.Debug("Database ready", logging.F("path", path))
	return s, nil
}

// InsertTransactions writes all rows in one database transaction.
func (s *SQLiteStore) InsertTransactions(ctx context.Context, rows []models.StatementRow) ([]string, error) {
	if len(rows) == 0 {
		return []string{}, nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO spending_transactions
		(id, user_id, amount, category, merchant_name, transaction_date, description, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()
	ids := make([]string, 0, len(rows))
	for i, row := range rows {
		id := uuid.NewString()
		_, err := stmt.ExecContext(ctx, id, row.UserID, row.Amount.String(), string(row.Category),
			row.MerchantName, row.TransactionDate, row.Description, string(row.Source), createdAt)
		if err != nil {
			return nil, fmt.Errorf("error inserting transaction %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transactions: %w", err)
	}

	s.logger.Debug("Transactions inserted",
		logging.F(logging.FieldUserID, rows[0].UserID),
		logging.F(logging.FieldCount, len(ids)))
	return ids, nil
}

// ListTransactions returns rows for userID, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string, limit int) ([]models.StatementRow, error) {
	query := `SELECT id, user_id, amount, category, merchant_name, transaction_date, description, source, created_at
		FROM spending_transactions WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	result := []models.StatementRow{}
	for rows.Next() {
		var (
			row      models.StatementRow
			amount   string
			category string
			source   string
		)
		if err := rows.Scan(&row.ID, &row.UserID, &amount, &category, &row.MerchantName,
			&row.TransactionDate, &row.Description, &source, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid stored amount %q for %s: %w", amount, row.ID, err)
		}
		row.Category = models.Category(category)
		row.Source = models.Source(source)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading transactions: %w", err)
	}
	return result, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
