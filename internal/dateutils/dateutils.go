// Package dateutils normalizes the heterogeneous date tokens found on Indian
// bank statements into ISO form.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateLayoutISO is the canonical output layout.
const DateLayoutISO = "2006-01-02"

// TwoDigitYearPivot is the last two-digit year mapped into the 2000s.
// 00..50 become 20xx, 51..99 become 19xx. The pivot is fixed and does not
// move with the current date.
const TwoDigitYearPivot = 50

// dayMonthYear matches D{1,2} sep M{1,2} sep (YYYY | YY) with sep in / - .
var dayMonthYear = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})$`)

// Normalize converts a day-first date token into YYYY-MM-DD.
// It reports false when the token does not have the expected shape.
// Day and month are zero-padded but not range-checked.
func Normalize(raw string) (string, bool) {
	m := dayMonthYear.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}

	year := m[3]
	if len(year) == 2 {
		yy, err := strconv.Atoi(year)
		if err != nil {
			return "", false
		}
		year = strconv.Itoa(ExpandYear(yy))
	}

	return fmt.Sprintf("%s-%s-%s", year, pad2(m[2]), pad2(m[1])), true
}

// NormalizeOrRaw returns the normalized date, or raw unchanged when it
// cannot be normalized.
func NormalizeOrRaw(raw string) string {
	if iso, ok := Normalize(raw); ok {
		return iso
	}
	return raw
}

// ExpandYear applies the fixed two-digit year pivot.
func ExpandYear(yy int) int {
	if yy > TwoDigitYearPivot {
		return 1900 + yy
	}
	return 2000 + yy
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
