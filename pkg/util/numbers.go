package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseFloat parses a numeric string to a metric pointer. Empty strings and
// the Alpha Vantage "None"/"-" placeholders map to nil, keeping "unknown"
// distinguishable from zero.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParsePercent parses a "12.34%" style string. The result stays in
// percentage-point units; callers divide by 100 where the internal
// fractional-ratio convention applies.
func ParsePercent(s string) *float64 {
	return ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// Ptr returns a pointer to v. Convenience for optional metrics.
func Ptr(v float64) *float64 { return &v }
