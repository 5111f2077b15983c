package util

import (
	"strconv"
	"time"
)

// feedTimeLayouts covers the timestamp formats seen across RSS, Atom and the
// JSON providers, in rough order of frequency.
var feedTimeLayouts = []string{
	time.RFC1123Z,                // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC1123,                 // Mon, 02 Jan 2006 15:04:05 MST
	time.RFC3339,                 // 2006-01-02T15:04:05Z07:00
	time.RFC3339Nano,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102T150405", // Alpha Vantage news timestamps
}

// ParseFeedTime parses a provider-native timestamp string. Returns (t, true)
// if any known layout worked, or unix seconds as a last resort.
func ParseFeedTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseFeedTimeDefault parses a timestamp or returns def if empty/invalid.
// Aggregation sorting uses the zero time as default so unparseable
// timestamps sort as the oldest.
func ParseFeedTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseFeedTime(s); ok {
		return t
	}
	return def
}

// UnixToDate converts unix seconds to a YYYY-MM-DD calendar date in UTC.
func UnixToDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}
