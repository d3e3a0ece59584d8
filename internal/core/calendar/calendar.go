// Package calendar provides day-granularity date arithmetic shared by the
// deadline, schedule and reporting rules.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the storage and CLI format for calendar dates.
const DateLayout = "2006-01-02"

// ClockLayout is the storage and CLI format for times of day.
const ClockLayout = "15:04"

// Day truncates t to midnight of its calendar date, expressed in UTC so that
// day arithmetic is free of DST shifts.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses an HH:MM time of day into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Before reports whether a falls on an earlier calendar date than b.
func Before(a, b time.Time) bool {
	return Day(a).Before(Day(b))
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
