package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Dining ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDining, c)

	_, err = ParseCategory("rent")
	assert.Error(t, err)
}

func TestAllCategories_OtherIsLast(t *testing.T) {
	all := AllCategories()
	require.Len(t, all, 10)
	assert.Equal(t, CategoryDining, all[0])
	assert.Equal(t, CategoryOther, all[len(all)-1])
}

func TestParsedTransaction_Direction(t *testing.T) {
	debit := ParsedTransaction{Direction: DirectionDebit}
	credit := ParsedTransaction{Direction: DirectionCredit}
	unset := ParsedTransaction{}

	assert.True(t, debit.IsDebit())
	assert.False(t, credit.IsDebit())
	assert.True(t, unset.IsDebit(), "missing direction counts as debit")
}

func TestParsedTransaction_MarshalJSON(t *testing.T) {
	tx := ParsedTransaction{
		Date:        "2024-01-12",
		Description: "SWIGGY ORDER",
		Amount:      decimal.RequireFromString("450.00"),
		Direction:   DirectionDebit,
		Category:    CategoryDining,
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 450.0, decoded["amount"])
	assert.Equal(t, "dining", decoded["category"])
	assert.Equal(t, "debit", decoded["direction"])
	assert.Equal(t, "2024-01-12", decoded["date"])
}

func TestNewStatementRows(t *testing.T) {
	txs := []ParsedTransaction{
		{Date: "2024-01-12", Description: "SWIGGY ORDER", Amount: decimal.NewFromInt(450), Category: CategoryDining},
		{Date: "2024-03-05", Description: "SALARY CREDIT", Amount: decimal.NewFromInt(50000), Category: CategoryOther},
	}

	rows := NewStatementRows("user-1", SourcePDF, txs)
	require.Len(t, rows, 2)
	assert.Equal(t, "user-1", rows[0].UserID)
	assert.Equal(t, "SWIGGY ORDER", rows[0].MerchantName)
	assert.Equal(t, "2024-01-12", rows[0].TransactionDate)
	assert.Equal(t, SourcePDF, rows[1].Source)
	assert.Empty(t, rows[0].ID)
}
