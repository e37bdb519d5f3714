// Package currencyutils parses rupee amounts as they appear on Indian bank statements.
package currencyutils

import (
	"errors"
	"regexp"
	"strings"

	"cardsense/cardsense-india/internal/parsererror"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("no digits")

// currencyPrefix matches the rupee markers statements put in front of amounts.
var currencyPrefix = regexp.MustCompile(`(?i)^(₹|rs\.?|inr)`)

// ParseAmount parses an amount token such as "₹1,23,456.78", "Rs. 450", or
// "-2,000.00". Thousands separators may use Indian (1,23,456) or Western
// (123,456) grouping; both are simply stripped. A sign may precede or follow
// the currency marker.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" || standardized == "-" || standardized == "+" {
		return decimal.Zero, &parsererror.ParseError{Parser: "currencyutils", Field: "amount", Value: amountStr, Err: errEmptyAmount}
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Parser: "currencyutils", Field: "amount", Value: amountStr, Err: err}
	}
	return amount, nil
}

// StandardizeAmount strips currency markers, whitespace and thousands
// separators so the result can be handed to decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)

	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], strings.TrimSpace(s[1:])
	}
	s = currencyPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if sign == "" && (strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")) {
		sign, s = s[:1], s[1:]
	}
	if sign == "+" {
		sign = ""
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")
	return sign + s
}

// IsPositive reports whether amount is strictly greater than zero.
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
