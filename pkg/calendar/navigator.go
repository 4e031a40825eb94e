// Package calendar provides month navigation, month grid construction and
// rendering for the diary's date picker.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const layoutMonth = "January 2006"

// Navigator tracks the month on display. The cursor is always the first day
// of that month.
type Navigator struct {
	cursor time.Time
}

// NewNavigator starts at the month containing now.
func NewNavigator(now time.Time) *Navigator {
	return &Navigator{cursor: FirstOfMonth(now)}
}

// Current returns the first day of the displayed month.
func (n *Navigator) Current() time.Time {
	return n.cursor
}

// Label renders the displayed month, e.g. "June 2014".
func (n *Navigator) Label() string {
	return MonthLabel(n.cursor)
}

// Next moves to day 1 of the following month. Adding the current month's
// length to a day-one date always lands on day one of the next month.
func (n *Navigator) Next() {
	n.cursor = n.cursor.AddDate(0, 0, DaysIn(n.cursor.Year(), n.cursor.Month()))
}

// Previous moves to day 1 of the preceding month: step back one day into the
// previous month, then normalize.
func (n *Navigator) Previous() {
	n.cursor = FirstOfMonth(n.cursor.AddDate(0, 0, -1))
}

// Jump displays the month containing t.
func (n *Navigator) Jump(t time.Time) {
	n.cursor = FirstOfMonth(t)
}

// FirstOfMonth returns midnight on day 1 of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthLabel renders t as "January 2006".
func MonthLabel(t time.Time) string {
	return t.Format(layoutMonth)
}

// ParseMonth accepts "2006-01" or "January 2006".
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", layoutMonth, "Jan 2006"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("calendar: cannot parse month %q, want YYYY-MM", s)
}

// DaysIn returns the number of days in month of year. Day zero of the next
// month normalizes to the last day of this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeap applies the Gregorian leap year rule.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
