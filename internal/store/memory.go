package store

import (
	"context"
	"sync"
	"time"

	"cardsense/cardsense-india/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process TransactionStore for tests and dry runs.
// Setting Err makes every insert and list fail with it.
type MemoryStore struct {
	mu   sync.Mutex
	rows []models.StatementRow
	Err  error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertTransactions(ctx context.Context, rows []models.StatementRow) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	now := time.Now().UTC()
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		row.ID = uuid.NewString()
		row.CreatedAt = now
		m.rows = append(m.rows, row)
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, limit int) ([]models.StatementRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	result := []models.StatementRow{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID != userID {
			continue
		}
		result = append(result, m.rows[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// Len returns the number of stored rows across all users.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *MemoryStore) Close() error { return nil }
