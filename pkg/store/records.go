package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

const recordColumns = `id, date_entered, time_entered, notes, active`

func scanRecord(row interface{ Scan(...any) error }) (*entry.Record, error) {
	var (
		r         entry.Record
		date, tod string
		active    int
	)
	if err := row.Scan(&r.ID, &date, &tod, &r.Notes, &active); err != nil {
		return nil, err
	}
	d, err := entry.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("store: record %d: %w", r.ID, err)
	}
	t, err := entry.ParseTimeOfDay(tod)
	if err != nil {
		return nil, fmt.Errorf("store: record %d: %w", r.ID, err)
	}
	r.Date = d
	r.Time = t
	r.Active = active != 0
	return &r, nil
}

// FindEntryByDate returns the record for the day of date, or nil when there
// is none.
func (s *Store) FindEntryByDate(ctx context.Context, date time.Time) (*entry.Record, error) {
	row := s.reader().QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE date_entered = ?`, entry.FormatDate(date))
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find entry %s: %w", entry.FormatDate(date), err)
	}
	return r, nil
}

// InsertEntry stages a new record and assigns its id. A record for the same
// day yields ErrConflict.
func (s *Store) InsertEntry(ctx context.Context, r *entry.Record) error {
	tx, err := s.session(ctx)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO records (date_entered, time_entered, notes, active) VALUES (?, ?, ?, ?)`,
		entry.FormatDate(r.Date), r.Time.String(), r.Notes, boolInt(r.Active))
	if isConstraint(err) {
		return fmt.Errorf("%w: entry for %s", ErrConflict, entry.FormatDate(r.Date))
	}
	if err != nil {
		return fmt.Errorf("store: insert entry: %w", err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("store: insert entry: %w", err)
	}
	s.log.WithField("date", r.Title()).Debug("entry staged")
	return nil
}

// UpdateEntry stages the field values of r onto its row.
func (s *Store) UpdateEntry(ctx context.Context, r *entry.Record) error {
	tx, err := s.session(ctx)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE records SET date_entered = ?, time_entered = ?, notes = ?, active = ? WHERE id = ?`,
		entry.FormatDate(r.Date), r.Time.String(), r.Notes, boolInt(r.Active), r.ID)
	if isConstraint(err) {
		return fmt.Errorf("%w: entry for %s", ErrConflict, entry.FormatDate(r.Date))
	}
	if err != nil {
		return fmt.Errorf("store: update entry %d: %w", r.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: update entry %d: no such record", r.ID)
	}
	return nil
}

// EntryDates lists the days in [from, to] that have a record.
func (s *Store) EntryDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	rows, err := s.reader().QueryContext(ctx,
		`SELECT date_entered FROM records WHERE date_entered BETWEEN ? AND ? ORDER BY date_entered`,
		entry.FormatDate(from), entry.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("store: entry dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		d, err := entry.ParseDate(v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
