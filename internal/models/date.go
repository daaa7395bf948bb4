package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date format used for progress keys.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a string is neither YYYY-MM-DD nor RFC3339.
var ErrInvalidDate = errors.New("invalid date")

const secondsPerDay = 24 * 60 * 60

// DateOf returns the calendar date of t (in t's own location) as midnight UTC.
// All schedule arithmetic runs on these values, so day differences are always
// whole multiples of 24h regardless of DST.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats the calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return DateOf(t).Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD or an RFC3339 timestamp into a calendar date.
// For timestamps the date is taken in the timestamp's own offset.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DaysBetween returns the whole-day difference to - from between two
// calendar dates. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	// Unix seconds rather than Sub: a Duration saturates after ~292 years.
	return int((DateOf(to).Unix() - DateOf(from).Unix()) / secondsPerDay)
}

// AddDays returns the calendar date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}
