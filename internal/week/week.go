// Package week computes week identity for meal plans. Weeks are
// Monday-aligned (ISO semantics: a Sunday belongs to the week of the
// preceding Monday) and all arithmetic is date-only.
package week

import (
	"time"

	"mealmind/internal/errs"
)

// DateLayout is the ISO date format used for week keys and day dates.
const DateLayout = "2006-01-02"

// Start returns the Monday of the week containing t, truncated to a
// date-only value in UTC.
func Start(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// Weekday() has Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// StartISO parses an ISO date and returns the ISO date of its week's Monday.
func StartISO(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return Start(d).Format(DateLayout), nil
}

// DaysOf returns the seven ISO dates of the week beginning at weekStart,
// ascending. weekStart must itself be a Monday.
func DaysOf(weekStart string) ([]string, error) {
	d, err := ParseDate(weekStart)
	if err != nil {
		return nil, err
	}
	if d.Weekday() != time.Monday {
		return nil, errs.Validation("week start %q is not a Monday", weekStart)
	}
	days := make([]string, 7)
	for i := 0; i < 7; i++ {
		days[i] = d.AddDate(0, 0, i).Format(DateLayout)
	}
	return days, nil
}

// AddWeeks moves a week key forward or backward by n weeks.
func AddWeeks(weekStart string, n int) (string, error) {
	d, err := ParseDate(weekStart)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, 7*n).Format(DateLayout), nil
}

// IsToday reports whether the ISO date names the same calendar day as now.
// The comparison is date-only; the clock portion of now is ignored.
func IsToday(date string, now time.Time) bool {
	return date == now.Format(DateLayout)
}

// ParseDate parses an ISO date, rejecting anything that is not a bare
// calendar date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, errs.Validation("invalid date %q: %v", date, err)
	}
	return d, nil
}

// DayName returns the English weekday name for an ISO date.
func DayName(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}
