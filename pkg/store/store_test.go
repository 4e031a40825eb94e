package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/entry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "entries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestOpenCreatesDirectoryAndSchema(t *testing.T) {
	s := newTestStore(t)
	_, err := os.Stat(s.Path())
	require.NoError(t, err)

	// Reopening an existing file runs no migrations and keeps data.
	ctx := context.Background()
	require.NoError(t, s.InsertEntry(ctx, entry.New(day(2014, time.June, 1), entry.TimeOfDay{Hour: 8}, "first")))
	require.NoError(t, s.Commit(ctx))
	require.NoError(t, s.Close())

	again, err := Open(s.Path())
	require.NoError(t, err)
	defer again.Close()
	r, err := again.FindEntryByDate(ctx, day(2014, time.June, 1))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "first", r.Notes)
}

func TestFindEntryByDateMissing(t *testing.T) {
	s := newTestStore(t)
	r, err := s.FindEntryByDate(context.Background(), day(2014, time.June, 2))
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.False(t, s.InTransaction())
}

func TestInsertEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := entry.New(day(2014, time.June, 11), entry.TimeOfDay{Hour: 21, Minute: 15, Second: 3}, "Leg cramp at night")
	require.NoError(t, s.InsertEntry(ctx, rec))
	assert.NotZero(t, rec.ID)
	assert.True(t, s.InTransaction())
	require.NoError(t, s.Commit(ctx))
	assert.False(t, s.InTransaction())

	got, err := s.FindEntryByDate(ctx, day(2014, time.June, 11))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Time, got.Time)
	assert.Equal(t, "Leg cramp at night", got.Notes)
	assert.True(t, got.Active)
	assert.True(t, entry.SameDay(rec.Date, got.Date))
}

func TestInsertEntryDuplicateDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertEntry(ctx, entry.New(day(2014, time.June, 11), entry.TimeOfDay{}, "a")))
	err := s.InsertEntry(ctx, entry.New(day(2014, time.June, 11), entry.TimeOfDay{}, "b"))
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)
}

func TestRollbackDiscardsStagedChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := entry.New(day(2014, time.June, 5), entry.TimeOfDay{Hour: 7}, "before")
	require.NoError(t, s.InsertEntry(ctx, rec))
	require.NoError(t, s.Commit(ctx))

	rec.Notes = "after"
	require.NoError(t, s.UpdateEntry(ctx, rec))
	staged, err := s.FindEntryByDate(ctx, rec.Date)
	require.NoError(t, err)
	assert.Equal(t, "after", staged.Notes, "staged changes are visible to the session")

	require.NoError(t, s.Rollback(ctx))
	got, err := s.FindEntryByDate(ctx, rec.Date)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Notes)
}

func TestCommitAndRollbackWithoutTransaction(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Commit(context.Background()))
	assert.NoError(t, s.Rollback(context.Background()))
}

func TestUpdateEntryUnknownID(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateEntry(context.Background(), &entry.Record{ID: 42, Date: day(2014, time.June, 1)})
	assert.Error(t, err)
}

func TestEntryDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, d := range []time.Time{day(2014, time.May, 31), day(2014, time.June, 1), day(2014, time.June, 30), day(2014, time.July, 1)} {
		require.NoError(t, s.InsertEntry(ctx, entry.New(d, entry.TimeOfDay{}, "")))
	}
	require.NoError(t, s.Commit(ctx))

	dates, err := s.EntryDates(ctx, day(2014, time.June, 1), day(2014, time.June, 30))
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, 1, dates[0].Day())
	assert.Equal(t, 30, dates[1].Day())
}

func TestItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cramp := &entry.Item{ID: "a", Kind: entry.KindSymptom, Name: "Leg cramp", Active: true}
	ache := &entry.Item{ID: "b", Kind: entry.KindSymptom, Name: "headache", Active: true}
	walk := &entry.Item{ID: "c", Kind: entry.KindActivity, Name: "Walk", Active: true}
	for _, it := range []*entry.Item{cramp, ache, walk} {
		require.NoError(t, s.AddItem(ctx, it))
	}
	err := s.AddItem(ctx, &entry.Item{ID: "d", Kind: entry.KindSymptom, Name: "Leg cramp", Active: true})
	assert.True(t, errors.Is(err, ErrConflict))
	require.NoError(t, s.Commit(ctx))

	items, err := s.ListItems(ctx, entry.KindSymptom)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "headache", items[0].Name)
	assert.Equal(t, "Leg cramp", items[1].Name)

	cramp.Active = false
	require.NoError(t, s.UpdateItem(ctx, cramp))
	require.NoError(t, s.Commit(ctx))
	items, err = s.ListItems(ctx, entry.KindSymptom)
	require.NoError(t, err)
	require.Len(t, items, 2, "soft-deleted items stay in the store")
	assert.False(t, items[1].Active)
}

func TestAttachDetachItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := entry.New(day(2014, time.June, 11), entry.TimeOfDay{}, "")
	require.NoError(t, s.InsertEntry(ctx, rec))
	cramp := &entry.Item{ID: "a", Kind: entry.KindSymptom, Name: "Leg cramp", Active: true}
	walk := &entry.Item{ID: "c", Kind: entry.KindActivity, Name: "Walk", Active: true}
	require.NoError(t, s.AddItem(ctx, cramp))
	require.NoError(t, s.AddItem(ctx, walk))
	require.NoError(t, s.AttachItem(ctx, rec.ID, cramp.ID))
	require.NoError(t, s.AttachItem(ctx, rec.ID, cramp.ID))
	require.NoError(t, s.AttachItem(ctx, rec.ID, walk.ID))
	require.NoError(t, s.Commit(ctx))

	symptoms, err := s.ItemsForEntry(ctx, rec.ID, entry.KindSymptom)
	require.NoError(t, err)
	require.Len(t, symptoms, 1)
	assert.Equal(t, "Leg cramp", symptoms[0].Name)

	require.NoError(t, s.DetachItem(ctx, rec.ID, cramp.ID))
	require.NoError(t, s.Commit(ctx))
	symptoms, err = s.ItemsForEntry(ctx, rec.ID, entry.KindSymptom)
	require.NoError(t, err)
	assert.Empty(t, symptoms)
}
