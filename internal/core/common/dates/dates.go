// Package dates handles the calendar values that cross the backend boundary.
// Dates travel as ISO strings (YYYY-MM-DD) and are treated as UTC-naive
// calendar days, never timezone-aware instants, so day arithmetic stays
// correct for leave counting and holiday consolidation.
package dates

import (
	"fmt"
	"time"
)

const (
	ISODate  = "2006-01-02"
	ISOMonth = "2006-01"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD and returns the calendar day at
// midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return Day(parsed), nil
	}
	parsed, err := time.Parse(ISODate, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Day(parsed), nil
}

func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseMonth parses YYYY-MM into the first day of that month at midnight UTC.
func ParseMonth(value string) (time.Time, error) {
	parsed, err := time.Parse(ISOMonth, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return parsed.UTC(), nil
}

func FormatMonth(t time.Time) string {
	return t.Format(ISOMonth)
}

// Day strips the clock and timezone, keeping only the calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, days int) time.Time {
	return Day(t).AddDate(0, 0, days)
}

// DaysBetween returns the calendar-day distance from from to to; inclusive
// day counts add one.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// IsNextDay reports whether b is the calendar day immediately after a.
func IsNextDay(a, b time.Time) bool {
	return AddDays(a, 1).Equal(Day(b))
}
