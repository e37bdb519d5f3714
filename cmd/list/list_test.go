package list_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"cardsense/cardsense-india/cmd/list"
	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_WritesCSV(t *testing.T) {
	memory := store.NewMemoryStore()
	_, err := memory.InsertTransactions(context.Background(), []models.StatementRow{
		{UserID: "u1", Amount: decimal.RequireFromString("450.00"), Category: models.CategoryDining, Description: "SWIGGY ORDER", TransactionDate: "2024-01-12", Source: models.SourceCSV},
		{UserID: "u2", Amount: decimal.NewFromInt(10), Category: models.CategoryOther, Description: "OTHER USER", TransactionDate: "2024-01-13", Source: models.SourceCSV},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, list.Run(context.Background(), memory, "u1", 10, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,UserID,Amount,Category,"))
	assert.Contains(t, lines[1], "SWIGGY ORDER")
	assert.NotContains(t, out.String(), "OTHER USER")
}

func TestRun_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, list.Run(context.Background(), store.NewMemoryStore(), "nobody", 10, &out))
	assert.Equal(t, "No transactions stored for nobody\n", out.String())
}

func TestRun_StoreError(t *testing.T) {
	memory := store.NewMemoryStore()
	memory.Err = errors.New("database locked")

	err := list.Run(context.Background(), memory, "u1", 10, &bytes.Buffer{})
	assert.ErrorContains(t, err, "database locked")
}
