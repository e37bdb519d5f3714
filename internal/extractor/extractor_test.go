package extractor

import (
	"strings"
	"testing"

	"cardsense/cardsense-india/internal/categorizer"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SingleLines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected models.ParsedTransaction
	}{
		{
			name: "swiggy debit",
			line: "12/01/2024 SWIGGY ORDER ₹450.00",
			expected: models.ParsedTransaction{
				Date:        "2024-01-12",
				Description: "SWIGGY ORDER",
				Amount:      decimal.NewFromInt(450),
				Direction:   models.DirectionDebit,
				Category:    models.CategoryDining,
			},
		},
		{
			name: "salary credit with two-digit year",
			line: "05-03-24 SALARY CREDIT ₹50,000.00",
			expected: models.ParsedTransaction{
				Date:        "2024-03-05",
				Description: "SALARY CREDIT",
				Amount:      decimal.NewFromInt(50000),
				Direction:   models.DirectionCredit,
				Category:    models.CategoryOther,
			},
		},
		{
			name: "rs prefix and indian grouping",
			line: "3/2/2024 AMAZON PAY Rs. 1,23,456.78",
			expected: models.ParsedTransaction{
				Date:        "2024-02-03",
				Description: "AMAZON PAY",
				Amount:      decimal.RequireFromString("123456.78"),
				Direction:   models.DirectionDebit,
				Category:    models.CategoryShopping,
			},
		},
		{
			name: "paise preferred over reference number",
			line: "15/01/2024 UPI 8812 UBER TRIP 245.50 10,000.00",
			expected: models.ParsedTransaction{
				Date:        "2024-01-15",
				Description: "UPI 8812 UBER TRIP  10,000.00",
				Amount:      decimal.RequireFromString("245.50"),
				Direction:   models.DirectionDebit,
				Category:    models.CategoryTravel,
			},
		},
		{
			name: "last bare number when nothing is marked",
			line: "20/01/2024 NETFLIX 649",
			expected: models.ParsedTransaction{
				Date:        "2024-01-20",
				Description: "NETFLIX",
				Amount:      decimal.NewFromInt(649),
				Direction:   models.DirectionDebit,
				Category:    models.CategoryEntertainment,
			},
		},
		{
			name: "refund in description is a credit",
			line: "21/01/2024 MYNTRA REFUND ₹1,299.00",
			expected: models.ParsedTransaction{
				Date:        "2024-01-21",
				Description: "MYNTRA REFUND",
				Amount:      decimal.NewFromInt(1299),
				Direction:   models.DirectionCredit,
				Category:    models.CategoryShopping,
			},
		},
		{
			name: "stray punctuation is kept",
			line: "22/01/2024 - ZOMATO - ₹320.00",
			expected: models.ParsedTransaction{
				Date:        "2024-01-22",
				Description: "- ZOMATO -",
				Amount:      decimal.NewFromInt(320),
				Direction:   models.DirectionDebit,
				Category:    models.CategoryDining,
			},
		},
		{
			name: "currency code before the date",
			line: "INR 12/01/2024 450.00 SWIGGY",
			expected: models.ParsedTransaction{
				Date:        "2024-01-12",
				Description: "INR   SWIGGY",
				Amount:      decimal.NewFromInt(450),
				Direction:   models.DirectionDebit,
				Category:    models.CategoryDining,
			},
		},
		{
			name: "rupee sign before the date",
			line: "TXN ₹ 05-03-2024 100 REFUND",
			expected: models.ParsedTransaction{
				Date:        "2024-03-05",
				Description: "TXN ₹   REFUND",
				Amount:      decimal.NewFromInt(100),
				Direction:   models.DirectionCredit,
				Category:    models.CategoryOther,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txs := Extract(tc.line)
			require.Len(t, txs, 1)
			got := txs[0]
			assert.Equal(t, tc.expected.Date, got.Date)
			assert.Equal(t, tc.expected.Description, got.Description)
			assert.True(t, tc.expected.Amount.Equal(got.Amount), "amount %s", got.Amount)
			assert.Equal(t, tc.expected.Direction, got.Direction)
			assert.Equal(t, tc.expected.Category, got.Category)
		})
	}
}

func TestExtract_SkipsNonQualifyingLines(t *testing.T) {
	text := strings.Join([]string{
		"HDFC BANK CREDIT CARD STATEMENT",
		"",
		"Statement period 01/01/2024",
		"Opening balance 12,000.00",
		"12/01/2024 SWIGGY ORDER ₹450.00",
		"   ",
		"13/01/2024 BLINKIT ₹0.00",
		"14/01/2024 ZEPTO ₹212.00",
	}, "\n")

	txs := Extract(text)

	require.Len(t, txs, 2)
	assert.Equal(t, "SWIGGY ORDER", txs[0].Description)
	assert.Equal(t, "ZEPTO", txs[1].Description)
	assert.Equal(t, models.CategoryGroceries, txs[1].Category)
}

func TestExtract_LinesInAtLeastTransactionsOut(t *testing.T) {
	inputs := []string{
		"",
		"no digits at all",
		"12/01/2024",
		"₹450.00",
		"12/01/2024 A ₹1\n13/01/2024 B ₹2\r\n14/01/2024 C ₹3",
		"01-01-24 x 1 2 3 4 5",
	}
	for _, in := range inputs {
		lines := splitLines(in)
		assert.LessOrEqual(t, len(Extract(in)), len(lines), "input %q", in)
	}
}

func TestExtract_PreservesOrder(t *testing.T) {
	txs := Extract("02/01/2024 B ₹2.00\n01/01/2024 A ₹1.00")
	require.Len(t, txs, 2)
	assert.Equal(t, "B", txs[0].Description)
	assert.Equal(t, "A", txs[1].Description)
}

func TestExtract_UnnormalizableDateKeptRaw(t *testing.T) {
	txs := Extract("12/01/202 ODD DATE ₹10.00")
	require.Len(t, txs, 1)
	assert.Equal(t, "12/01/202", txs[0].Date)
}

func TestExtractor_UsesCategorizerAndLogs(t *testing.T) {
	logger := logging.NewMockLogger()
	c := categorizer.New(logger, categorizer.WithExtraKeywords(map[models.Category][]string{
		models.CategoryDining: {"meghana"},
	}))

	txs := New(c, logger).Extract("12/01/2024 MEGHANA BIRYANI HOUSE ₹600.00\njunk")

	require.Len(t, txs, 1)
	assert.Equal(t, models.CategoryDining, txs[0].Category)

	entries := logger.GetEntriesByLevel("DEBUG")
	found := false
	for _, e := range entries {
		if e.Message == "Statement text extracted" {
			found = true
			assert.Contains(t, e.Fields, logging.F(logging.FieldLines, 2))
			assert.Contains(t, e.Fields, logging.F(logging.FieldCount, 1))
		}
	}
	assert.True(t, found)
}

func TestInferDirection(t *testing.T) {
	tests := []struct {
		line        string
		description string
		expected    models.Direction
	}{
		{"05-03-24 SALARY CREDIT ₹50,000.00", "SALARY CREDIT", models.DirectionCredit},
		{"CASH DEPOSIT 5,000", "CASH DEPOSIT", models.DirectionCredit},
		{"x", "Monthly Salary", models.DirectionCredit},
		{"x", "FLIPKART REFUND", models.DirectionCredit},
		{"12/01/2024 SWIGGY ORDER ₹450.00", "SWIGGY ORDER", models.DirectionDebit},
		// Known false positive: merchant names containing a marker.
		{"CREDIT CARD BILL PAY", "CREDIT CARD BILL PAY", models.DirectionCredit},
	}
	for _, tc := range tests {
		t.Run(tc.line+"/"+tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, InferDirection(tc.line, tc.description))
		})
	}
}
