package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// DayInterval returns the half-open [start, end) interval covering the
// calendar day of t, for filtering timestamps to that day only.
func DayInterval(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// FormatDate formats a time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}
