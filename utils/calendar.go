package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// WeekdayNames holds the Albanian weekday names, Monday first, matching the
// weekday column of the takvimi.
var WeekdayNames = [7]string{
	"e hënë", "e martë", "e mërkurë", "e enjte", "e premte", "e shtunë", "e diel",
}

// monthPatterns pairs each Albanian month name with its two-digit code, in
// calendar order. Detection walks this list and commits to the first hit.
var monthPatterns = []struct {
	re   *regexp.Regexp
	code string
}{
	{regexp.MustCompile(`(?i)\bjanar\b`), "01"},
	{regexp.MustCompile(`(?i)\bshkurt\b`), "02"},
	{regexp.MustCompile(`(?i)\bmars\b`), "03"},
	{regexp.MustCompile(`(?i)\bprill\b`), "04"},
	{regexp.MustCompile(`(?i)\bmaj\b`), "05"},
	{regexp.MustCompile(`(?i)\bqershor\b`), "06"},
	{regexp.MustCompile(`(?i)\bkorrik\b`), "07"},
	{regexp.MustCompile(`(?i)\bgusht\b`), "08"},
	{regexp.MustCompile(`(?i)\bshtator\b`), "09"},
	{regexp.MustCompile(`(?i)\btetor\b`), "10"},
	{regexp.MustCompile(`(?i)\bnëntor\b`), "11"},
	{regexp.MustCompile(`(?i)\bdhjetor\b`), "12"},
}

// MonthFromText scans text for an Albanian month name and returns its
// two-digit code.
func MonthFromText(text string) (string, bool) {
	for _, p := range monthPatterns {
		if p.re.MatchString(text) {
			return p.code, true
		}
	}
	return "", false
}

// ResolveMonth decides which month a page belongs to: explicit month-name
// detection first, then positional inference for the first 12 pages.
// Returns ok=false when the page cannot be resolved.
func ResolveMonth(text string, pageIndex int) (string, bool) {
	if code, ok := MonthFromText(text); ok {
		return code, true
	}
	if pageIndex >= 0 && pageIndex < 12 {
		return fmt.Sprintf("%02d", pageIndex+1), true
	}
	return "", false
}

// IsLeapYear follows the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the day count of a month given as a two-digit code,
// leap-year aware for February. Unknown codes yield 31, mirroring the
// default applied while scanning malformed pages.
func DaysInMonth(year int, month string) int {
	switch month {
	case "02":
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case "04", "06", "09", "11":
		return 30
	}
	return 31
}

// WeekdayFor computes the Albanian weekday name for a date. Returns "" when
// the inputs do not form a valid date.
func WeekdayFor(year int, month string, day int) string {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return ""
	}
	d := time.Date(year, time.Month(m), day, 0, 0, 0, 0, time.UTC)
	return WeekdayNames[(int(d.Weekday())+6)%7]
}
