package currencyutils

import (
	"testing"

	"cardsense/cardsense-india/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1,23,456.78", "123456.78"},
		{"123,456.78", "123456.78"},
		{"₹450.00", "450"},
		{"₹ 50,000.00", "50000"},
		{"Rs. 1,200", "1200"},
		{"Rs450", "450"},
		{"INR 99.50", "99.5"},
		{"-2,000.00", "-2000"},
		{"-₹75", "-75"},
		{"₹-75", "-75"},
		{"+10", "10"},
		{"0.00", "0"},
		{" 7 ", "7"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "₹", "abc", "12..5", "-"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAmount(input)
			var parseErr *parsererror.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "amount", parseErr.Field)
			assert.Equal(t, input, parseErr.Value)
		})
	}
}

func TestParseAmount_IndianGroupingFloat(t *testing.T) {
	got, err := ParseAmount("1,23,456.78")
	require.NoError(t, err)
	assert.Equal(t, 123456.78, got.InexactFloat64())
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(decimal.NewFromFloat(0.01)))
	assert.False(t, IsPositive(decimal.Zero))
	assert.False(t, IsPositive(decimal.NewFromInt(-5)))
}
