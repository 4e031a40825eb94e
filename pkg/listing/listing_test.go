package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/edit"
	"tableflip.dev/diary/pkg/entry"
)

type nameForm struct {
	name   string
	active bool
}

func (f *nameForm) FillIn(it *entry.Item) {
	f.name = it.Name
	f.active = it.Active
}

func (f *nameForm) UpdateRecord(it *entry.Item) {
	it.Name = f.name
	it.Active = f.active
}

func (f *nameForm) Validate() error {
	return ValidatePhrase(f.name)
}

func newManager(repo *stubRepo) *Manager {
	return New(entry.KindSymptom, repo, func() edit.Form[*entry.Item] { return &nameForm{} })
}

func seeded() *stubRepo {
	return newStubRepo(
		entry.Item{ID: "1", Kind: entry.KindSymptom, Name: "Headache", Active: true},
		entry.Item{ID: "2", Kind: entry.KindSymptom, Name: "Leg cramp", Active: true},
		entry.Item{ID: "3", Kind: entry.KindActivity, Name: "Walk", Active: true},
	)
}

func TestOpenListsOnlyManagedKind(t *testing.T) {
	m := newManager(seeded())
	require.NoError(t, m.Open(context.Background()))
	require.Len(t, m.Items(), 2)
	assert.Equal(t, "Headache", m.Items()[0].Name)
	assert.Equal(t, "Leg cramp", m.Items()[1].Name)
}

func TestNewItemAddedOnSave(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))

	w, err := m.NewItem()
	require.NoError(t, err)
	assert.Equal(t, edit.Editing, w.State())
	assert.True(t, w.Record().Active)
	assert.Equal(t, entry.KindSymptom, w.Record().Kind)

	w.Form().(*nameForm).name = "Nausea"
	require.NoError(t, w.AttemptSave(ctx))

	require.Len(t, m.Items(), 3, "list refreshed after save")
	assert.Equal(t, "Nausea", m.Items()[2].Name)
	assert.Equal(t, 0, repo.commits, "item saves are staged until SaveEdits")

	require.NoError(t, m.SaveEdits(ctx))
	assert.Equal(t, 1, repo.commits)
	assert.Contains(t, repo.committed, w.Record().ID)
}

func TestNewItemDuplicateNameStaysEditing(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))

	w, err := m.NewItem()
	require.NoError(t, err)
	w.Form().(*nameForm).name = "Headache"
	require.Error(t, w.AttemptSave(ctx))
	assert.Equal(t, edit.Editing, w.State())
	assert.Len(t, m.Items(), 2)

	w.Form().(*nameForm).name = "Headache after lunch"
	require.NoError(t, w.AttemptSave(ctx))
	assert.Equal(t, edit.Saved, w.State())
	require.Len(t, m.Items(), 3)
	assert.Equal(t, "Headache after lunch", m.Items()[1].Name)
}

func TestNewItemInvalidNameNotAdded(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))

	w, err := m.NewItem()
	require.NoError(t, err)
	w.Form().(*nameForm).name = "leg_cramp"

	err = w.AttemptSave(ctx)
	var invalid *InvalidPhraseError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, edit.Editing, w.State())
	assert.Len(t, m.Items(), 2)

	require.NoError(t, w.Cancel(ctx))
	assert.Len(t, m.Items(), 2)
	assert.Nil(t, repo.staged)
}

func TestEditSelectedRefreshesOnSave(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))

	w, err := m.EditSelected(1)
	require.NoError(t, err)
	f := w.Form().(*nameForm)
	assert.Equal(t, "Leg cramp", f.name)

	f.name = "Calf cramp"
	require.NoError(t, w.AttemptSave(ctx))
	assert.Equal(t, "Calf cramp", m.Items()[0].Name)
	assert.Equal(t, "Calf cramp", repo.staged["2"].Name)
	assert.Equal(t, "Leg cramp", repo.committed["2"].Name)
}

func TestEditSelectedCancelRefreshesAndKeepsValues(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))
	before := m.Items()[0]

	w, err := m.EditSelected(0)
	require.NoError(t, err)
	w.Form().(*nameForm).name = "Migraine"
	require.NoError(t, w.Cancel(ctx))

	assert.NotSame(t, before, m.Items()[0], "list re-fetched")
	assert.Equal(t, "Headache", m.Items()[0].Name)
	assert.Equal(t, 0, repo.commits)
}

func TestEditSelectedOutOfRange(t *testing.T) {
	m := newManager(seeded())
	require.NoError(t, m.Open(context.Background()))
	_, err := m.EditSelected(5)
	assert.Error(t, err)
	_, err = m.EditSelected(-1)
	assert.Error(t, err)
}

func TestToggleActiveIsSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))

	it, err := m.ToggleActive(ctx, 0)
	require.NoError(t, err)
	assert.False(t, it.Active)
	require.Len(t, m.Items(), 2, "inactive items stay listed")
	assert.False(t, m.Items()[0].Active)

	require.NoError(t, m.SaveEdits(ctx))
	assert.False(t, repo.committed["1"].Active)

	_, err = m.ToggleActive(ctx, 0)
	require.NoError(t, err)
	assert.True(t, m.Items()[0].Active)
}

func TestCancelEditsDiscardsEverything(t *testing.T) {
	ctx := context.Background()
	repo := seeded()
	m := newManager(repo)
	require.NoError(t, m.Open(ctx))

	w, err := m.NewItem()
	require.NoError(t, err)
	w.Form().(*nameForm).name = "Nausea"
	require.NoError(t, w.AttemptSave(ctx))
	_, err = m.ToggleActive(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, m.CancelEdits(ctx))
	assert.Equal(t, 1, repo.rollbacks)
	assert.Equal(t, 0, repo.commits)
	require.Len(t, m.Items(), 2)
	assert.True(t, m.Items()[0].Active)
}

func TestValidatePhrase(t *testing.T) {
	tests := []struct {
		phrase string
		ok     bool
	}{
		{"Leg cramp", true},
		{"leg-cramp 2", true},
		{"Kopfschmerzen", true},
		{"Übelkeit", true},
		{"½ dose", true},
		{"Rash 2²", true},
		{"Ⅻ", true},
		{"", false},
		{"   ", false},
		{"\t", false},
		{"leg_cramp", false},
		{"leg cramp!", false},
		{"a/b", false},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			err := ValidatePhrase(tt.phrase)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var invalid *InvalidPhraseError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.phrase, invalid.Phrase)
		})
	}
}
