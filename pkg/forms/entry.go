package forms

import (
	"strings"

	"tableflip.dev/diary/pkg/entry"
)

const (
	FieldNotes = "notes"
	FieldTime  = "time"
)

// EntryForm edits the notes and time of day of a diary entry.
type EntryForm struct {
	Notes string
	// Time is HH:MM or HH:MM:SS.
	Time string

	Errors FieldErrors

	filled entry.TimeOfDay
}

// NewEntryForm returns an empty entry editor.
func NewEntryForm() *EntryForm { return &EntryForm{} }

func (f *EntryForm) FillIn(r *entry.Record) {
	f.Notes = r.Notes
	f.Time = r.Time.Short()
	f.filled = r.Time
	f.Errors = nil
}

func (f *EntryForm) Validate() error {
	f.Errors = FieldErrors{}
	if _, err := entry.ParseTimeOfDay(strings.TrimSpace(f.Time)); err != nil {
		f.Errors[FieldTime] = "expected a time like 14:30"
	}
	return f.Errors.orNil()
}

// UpdateRecord copies the form onto r. Validate has already checked the time.
// A time text left as filled in keeps the record's seconds.
func (f *EntryForm) UpdateRecord(r *entry.Record) {
	r.Notes = f.Notes
	text := strings.TrimSpace(f.Time)
	if text == f.filled.Short() || text == f.filled.String() {
		r.Time = f.filled
		return
	}
	if t, err := entry.ParseTimeOfDay(text); err == nil {
		r.Time = t
	}
}
