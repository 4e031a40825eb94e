// Package entry holds the diary's persisted record types.
package entry

import (
	"fmt"
	"time"
)

// Record is one diary entry. There is at most one record per calendar day.
type Record struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Time   TimeOfDay `json:"time"`
	Notes  string    `json:"notes,omitempty"`
	Active bool      `json:"active"`
}

// New returns an active record for the day of date, written at t.
func New(date time.Time, t TimeOfDay, notes string) *Record {
	return &Record{
		Date:   Day(date),
		Time:   t,
		Notes:  notes,
		Active: true,
	}
}

// Title is the ISO date of the entry.
func (r *Record) Title() string {
	return FormatDate(r.Date)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s %s  %s", r.Title(), r.Time, r.Notes)
}
