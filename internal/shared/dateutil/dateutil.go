// Package dateutil handles calendar dates. Dates are parsed in time.Local,
// the same location the MySQL DSN (loc=Local) uses, so a DATE column
// round-trips without shifting a day.
package dateutil

import (
	"errors"
	"time"
)

const (
	Layout      = time.DateOnly
	MonthLayout = "2006-01"
)

var ErrEmpty = errors.New("date is empty")

func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	return time.ParseInLocation(Layout, s, time.Local)
}

// ParseOptional returns nil for an empty string.
func ParseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

func FormatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Format(*t)
	return &s
}

// Truncate drops the clock part, keeping the calendar day in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func DayBefore(t time.Time) time.Time {
	return Truncate(t).AddDate(0, 0, -1)
}

// MonthRange parses "YYYY-MM" into its first and last calendar day.
func MonthRange(month string) (first, last time.Time, err error) {
	m, err := time.ParseInLocation(MonthLayout, month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	first = m
	last = m.AddDate(0, 1, -1)
	return first, last, nil
}
