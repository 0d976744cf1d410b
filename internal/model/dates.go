package model

import (
	"regexp"
	"strconv"
)

var monthYearRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{4})$`)

// ParseMonth parses an MM/YYYY date.
func ParseMonth(s string) (month, year int, ok bool) {
	m := monthYearRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	month, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	return month, year, true
}

// MonthBefore reports whether a is strictly earlier than b. Both must parse.
func MonthBefore(a, b string) bool {
	am, ay, ok1 := ParseMonth(a)
	bm, by, ok2 := ParseMonth(b)
	if !ok1 || !ok2 {
		return false
	}
	if ay != by {
		return ay < by
	}
	return am < bm
}
