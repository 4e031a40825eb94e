// Package app is the bridge between the views and the store: it looks
// entries up by date, creates them on first selection and hands them to a
// presenter.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/edit"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/timeutil"
)

// NotRecorded is the summary shown for a kind with no linked items.
const NotRecorded = "Not recorded"

// Store is the persistence the service needs. Writes are staged in an open
// session until Commit or Rollback.
type Store interface {
	FindEntryByDate(ctx context.Context, date time.Time) (*entry.Record, error)
	InsertEntry(ctx context.Context, r *entry.Record) error
	UpdateEntry(ctx context.Context, r *entry.Record) error
	EntryDates(ctx context.Context, from, to time.Time) ([]time.Time, error)
	ItemsForEntry(ctx context.Context, recordID int64, kind entry.Kind) ([]*entry.Item, error)
	AttachItem(ctx context.Context, recordID int64, itemID string) error
	DetachItem(ctx context.Context, recordID int64, itemID string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Presenter shows an entry to the user.
type Presenter interface {
	ShowEntry(ctx context.Context, r *entry.Record) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, r *entry.Record) error

func (f PresenterFunc) ShowEntry(ctx context.Context, r *entry.Record) error { return f(ctx, r) }

// DuplicateEntryError is returned when creating an entry for a day that
// already has one.
type DuplicateEntryError struct {
	Date time.Time
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("cannot create entry for the date of %s because one already exists; you can edit it instead",
		entry.FormatDate(e.Date))
}

// NotFoundError is returned when an entry is required but the day has none.
type NotFoundError struct {
	Date time.Time
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry for the date of %s", entry.FormatDate(e.Date))
}

// IsUserFacing reports whether err should be shown to the user as a message
// rather than treated as a failure.
func IsUserFacing(err error) bool {
	var dup *DuplicateEntryError
	var nf *NotFoundError
	return errors.As(err, &dup) || errors.As(err, &nf)
}

// Service provides the entry operations shared by the CLI and the TUI.
type Service struct {
	Store     Store
	Clock     timeutil.Clock
	Presenter Presenter
	WeekStart time.Weekday
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// FindEntryByDate returns the entry for the day of date, or nil.
func (s *Service) FindEntryByDate(ctx context.Context, date time.Time) (*entry.Record, error) {
	return s.Store.FindEntryByDate(ctx, entry.Day(date))
}

// CreateEntryByDate inserts and commits a new entry. If the day already has
// one it is left untouched and a DuplicateEntryError is returned.
func (s *Service) CreateEntryByDate(ctx context.Context, date time.Time, t entry.TimeOfDay, notes string) (*entry.Record, error) {
	existing, err := s.FindEntryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateEntryError{Date: entry.Day(date)}
	}

	r := entry.New(date, t, notes)
	if err := s.Store.InsertEntry(ctx, r); err != nil {
		_ = s.Store.Rollback(ctx)
		return nil, err
	}
	if err := s.Store.Commit(ctx); err != nil {
		return nil, err
	}
	log.WithField("date", r.Title()).Info("entry created")
	return r, nil
}

// DisplayEntryByDate hands the day's entry to the presenter. A day without
// an entry yields a NotFoundError.
func (s *Service) DisplayEntryByDate(ctx context.Context, date time.Time) (*entry.Record, error) {
	r, err := s.FindEntryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &NotFoundError{Date: entry.Day(date)}
	}
	if s.Presenter != nil {
		if err := s.Presenter.ShowEntry(ctx, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SelectDate is what happens when a day is picked on the calendar: the entry
// is created if missing, then displayed.
func (s *Service) SelectDate(ctx context.Context, date time.Time) (*entry.Record, error) {
	existing, err := s.FindEntryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if _, err := s.CreateEntryByDate(ctx, date, entry.TimeOf(s.now()), ""); err != nil {
			return nil, err
		}
	}
	return s.DisplayEntryByDate(ctx, date)
}

// EntryDates returns the set of days in the month of month that have an
// entry, keyed by ISO date.
func (s *Service) EntryDates(ctx context.Context, month time.Time) (map[string]bool, error) {
	first := calendar.FirstOfMonth(month)
	last := first.AddDate(0, 0, calendar.DaysIn(first.Year(), first.Month())-1)
	dates, err := s.Store.EntryDates(ctx, first, last)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[entry.FormatDate(d)] = true
	}
	return set, nil
}

// Grid builds the calendar grid for month with entry and today flags set.
func (s *Service) Grid(ctx context.Context, month time.Time) (calendar.Grid, error) {
	set, err := s.EntryDates(ctx, month)
	if err != nil {
		return calendar.Grid{}, err
	}
	hasEntry := func(d time.Time) bool { return set[entry.FormatDate(d)] }
	return calendar.BuildGrid(month, hasEntry, s.now(), s.WeekStart), nil
}

// EditEntry opens an edit workflow on the day's entry.
func (s *Service) EditEntry(ctx context.Context, date time.Time, form edit.Form[*entry.Record]) (*edit.Workflow[*entry.Record], error) {
	r, err := s.FindEntryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &NotFoundError{Date: entry.Day(date)}
	}
	w := edit.New[*entry.Record](form, &entrySession{store: s.Store})
	w.OnSaveFinished(func(_ context.Context, r *entry.Record) error {
		log.WithField("date", r.Title()).Info("entry saved")
		return nil
	})
	if err := w.Open(r); err != nil {
		return nil, err
	}
	return w, nil
}

// Summary is the comma separated names of the items of kind linked to r, or
// NotRecorded.
func (s *Service) Summary(ctx context.Context, r *entry.Record, kind entry.Kind) (string, error) {
	items, err := s.Store.ItemsForEntry(ctx, r.ID, kind)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return NotRecorded, nil
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return strings.Join(names, ", "), nil
}

// AttachItem links it to r and commits.
func (s *Service) AttachItem(ctx context.Context, r *entry.Record, it *entry.Item) error {
	if err := s.Store.AttachItem(ctx, r.ID, it.ID); err != nil {
		_ = s.Store.Rollback(ctx)
		return err
	}
	return s.Store.Commit(ctx)
}

// DetachItem unlinks it from r and commits.
func (s *Service) DetachItem(ctx context.Context, r *entry.Record, it *entry.Item) error {
	if err := s.Store.DetachItem(ctx, r.ID, it.ID); err != nil {
		_ = s.Store.Rollback(ctx)
		return err
	}
	return s.Store.Commit(ctx)
}

// entrySession saves an edited entry through the store's session.
type entrySession struct {
	store Store
}

func (e *entrySession) Stage(ctx context.Context, r *entry.Record) error {
	return e.store.UpdateEntry(ctx, r)
}

func (e *entrySession) Commit(ctx context.Context) error   { return e.store.Commit(ctx) }
func (e *entrySession) Rollback(ctx context.Context) error { return e.store.Rollback(ctx) }
