package fetcher

import (
	"strconv"
	"strings"
)

// FormatValue renders a fetched value the way downstream dashboards
// expect it: six decimal places with a comma as the decimal separator.
func FormatValue(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 6, 64), ".", ",", 1)
}

// ParseEuropean parses a number written in European locale notation,
// where '.' groups thousands and ',' marks the decimal point
// (e.g. "1.234,56" -> 1234.56).
func ParseEuropean(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}
