package pkg

import (
	"fmt"
	"regexp"
)

// Registration dates travel in two shapes: filters arrive in display form
// (DD/MM/YYYY, day and month may be one digit) and records store the
// canonical form (YYYY-MM-DD). Both patterns check shape only; semantic
// calendar validation (month 13, day 32) is intentionally not performed,
// matching what existing clients already send.
var (
	displayDatePattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	canonicalDatePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// ToCanonicalDate converts a display-form date (DD/MM/YYYY) to canonical form
// (YYYY-MM-DD), zero-padding day and month. The second return value is false
// when the input does not match the display shape.
func ToCanonicalDate(s string) (string, bool) {
	m := displayDatePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	day, month, year := m[1], m[2], m[3]
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day)), true
}

// ToDisplayDate converts a canonical-form date (YYYY-MM-DD) to display form
// (DD/MM/YYYY), zero-padding day and month.
func ToDisplayDate(s string) (string, bool) {
	m := canonicalDatePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	year, month, day := m[1], m[2], m[3]
	return fmt.Sprintf("%s/%s/%s", pad2(day), pad2(month), year), true
}

// IsDisplayDate reports whether s has the display-form date shape.
func IsDisplayDate(s string) bool {
	return displayDatePattern.MatchString(s)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
