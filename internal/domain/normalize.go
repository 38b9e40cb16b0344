package domain

import (
	"strings"
	"time"
)

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. It is used for player and user name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDate strips the time-of-day component so dates compare by calendar
// day. Attendance natural keys and all date grouping use normalized dates.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats a normalized date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return NormalizeDate(t).Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}
