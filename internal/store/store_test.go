package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows(userID string) []models.StatementRow {
	return models.NewStatementRows(userID, models.SourcePDF, []models.ParsedTransaction{
		{Date: "2024-01-12", Description: "SWIGGY ORDER", Amount: decimal.RequireFromString("450.00"), Direction: models.DirectionDebit, Category: models.CategoryDining},
		{Date: "2024-03-05", Description: "SALARY CREDIT", Amount: decimal.NewFromInt(50000), Direction: models.DirectionCredit, Category: models.CategoryOther},
	})
}

func stores(t *testing.T) map[string]TransactionStore {
	t.Helper()
	sqlite, err := Open(filepath.Join(t.TempDir(), "data", "cardsense.db"), logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]TransactionStore{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestInsertAndList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ids, err := s.InsertTransactions(ctx, sampleRows("user-1"))
			require.NoError(t, err)
			require.Len(t, ids, 2)
			for _, id := range ids {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			}

			rows, err := s.ListTransactions(ctx, "user-1", 0)
			require.NoError(t, err)
			require.Len(t, rows, 2)

			byID := map[string]models.StatementRow{}
			for _, r := range rows {
				byID[r.ID] = r
			}
			swiggy := byID[ids[0]]
			assert.Equal(t, "user-1", swiggy.UserID)
			assert.Equal(t, "SWIGGY ORDER", swiggy.MerchantName)
			assert.Equal(t, "2024-01-12", swiggy.TransactionDate)
			assert.Equal(t, models.CategoryDining, swiggy.Category)
			assert.Equal(t, models.SourcePDF, swiggy.Source)
			assert.True(t, decimal.NewFromInt(450).Equal(swiggy.Amount))
			assert.False(t, swiggy.CreatedAt.IsZero())

			other, err := s.ListTransactions(ctx, "user-2", 0)
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}

func TestInsertTwice_NoDeduplication(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := s.InsertTransactions(ctx, sampleRows("user-1"))
			require.NoError(t, err)
			second, err := s.InsertTransactions(ctx, sampleRows("user-1"))
			require.NoError(t, err)

			assert.NotEqual(t, first, second)
			rows, err := s.ListTransactions(ctx, "user-1", 0)
			require.NoError(t, err)
			assert.Len(t, rows, 4)

			limited, err := s.ListTransactions(ctx, "user-1", 3)
			require.NoError(t, err)
			assert.Len(t, limited, 3)
		})
	}
}

func TestInsertEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ids, err := s.InsertTransactions(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestMemoryStore_InjectedFailure(t *testing.T) {
	s := NewMemoryStore()
	s.Err = errors.New("connection refused")

	_, err := s.InsertTransactions(context.Background(), sampleRows("user-1"))

	assert.EqualError(t, err, "connection refused")
	assert.Zero(t, s.Len())
}

func TestSQLiteStore_CancelledContext(t *testing.T) {
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.InsertTransactions(ctx, sampleRows("user-1"))
	assert.Error(t, err)

	rows, err := s.ListTransactions(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardsense.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	_, err = s.InsertTransactions(context.Background(), sampleRows("user-1"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.ListTransactions(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
