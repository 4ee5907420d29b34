package util

import (
	"strconv"
	"time"
)

// DateLayout is the canonical day format used across the service.
const DateLayout = "2006-01-02"

// ParseTime tries the day layout, RFC3339, RFC3339Nano, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// TruncateDay drops the intraday part of t in UTC.
func TruncateDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// AlignFromTo rounds a date range to whole days, inclusive on both ends.
func AlignFromTo(from, to time.Time) (time.Time, time.Time) {
	return TruncateDay(from), TruncateDay(to)
}

// FormatDay renders t as a day string in UTC.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
