// Package listing manages a collection of auxiliary list items of one kind:
// browsing, creating, editing and soft-deleting them, on top of the edit
// workflow.
package listing

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/edit"
	"tableflip.dev/diary/pkg/entry"
)

// Repository is the store surface the manager needs. Add and Update stage
// changes in the open session; Commit and Rollback end it.
type Repository interface {
	ListItems(ctx context.Context, kind entry.Kind) ([]*entry.Item, error)
	AddItem(ctx context.Context, it *entry.Item) error
	UpdateItem(ctx context.Context, it *entry.Item) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// FormFactory builds a fresh editor for one item.
type FormFactory func() edit.Form[*entry.Item]

// Manager is the list management workflow for one item kind. Item edits are
// staged as they are saved; SaveEdits commits them all and CancelEdits
// discards them all.
type Manager struct {
	kind    entry.Kind
	repo    Repository
	newForm FormFactory
	items   []*entry.Item
	log     *log.Entry
}

// New returns a manager for kind. Call Open before browsing.
func New(kind entry.Kind, repo Repository, newForm FormFactory) *Manager {
	return &Manager{
		kind:    kind,
		repo:    repo,
		newForm: newForm,
		log:     log.WithField("kind", kind),
	}
}

// Kind returns the managed item kind.
func (m *Manager) Kind() entry.Kind { return m.kind }

// Items returns the list as of the last refresh.
func (m *Manager) Items() []*entry.Item { return m.items }

// Open loads the list.
func (m *Manager) Open(ctx context.Context) error {
	_, err := m.ListAll(ctx)
	return err
}

// ListAll re-fetches every item of the managed kind from the store.
func (m *Manager) ListAll(ctx context.Context) ([]*entry.Item, error) {
	items, err := m.repo.ListItems(ctx, m.kind)
	if err != nil {
		return nil, err
	}
	m.items = items
	return items, nil
}

// NewItem opens an edit workflow on a blank item. Saving adds the item to the
// store; a rejected add leaves the workflow editing. The list is refreshed
// once the save finishes.
func (m *Manager) NewItem() (*edit.Workflow[*entry.Item], error) {
	it := entry.NewItem(m.kind)
	w := edit.New[*entry.Item](m.newForm(), &itemSession{repo: m.repo, isNew: true})
	w.OnSaveFinished(func(ctx context.Context, it *entry.Item) error {
		m.log.WithField("name", it.Name).Info("item added")
		_, err := m.ListAll(ctx)
		return err
	})
	if err := w.Open(it); err != nil {
		return nil, err
	}
	return w, nil
}

// EditSelected opens an edit workflow on the item at index. The list is
// refreshed when the edit finishes, saved or cancelled.
func (m *Manager) EditSelected(index int) (*edit.Workflow[*entry.Item], error) {
	it, err := m.at(index)
	if err != nil {
		return nil, err
	}
	w := edit.New[*entry.Item](m.newForm(), &itemSession{repo: m.repo})
	w.OnClose(func(ctx context.Context, _ edit.State) error {
		_, err := m.ListAll(ctx)
		return err
	})
	if err := w.Open(it); err != nil {
		return nil, err
	}
	return w, nil
}

// ToggleActive flips the soft-delete flag of the item at index. The item is
// never removed from the store.
func (m *Manager) ToggleActive(ctx context.Context, index int) (*entry.Item, error) {
	it, err := m.at(index)
	if err != nil {
		return nil, err
	}
	it.Active = !it.Active
	if err := m.repo.UpdateItem(ctx, it); err != nil {
		it.Active = !it.Active
		return nil, err
	}
	m.log.WithFields(log.Fields{"name": it.Name, "active": it.Active}).Debug("item toggled")
	if _, err := m.ListAll(ctx); err != nil {
		return nil, err
	}
	return it, nil
}

// SaveEdits commits everything staged since the list was opened.
func (m *Manager) SaveEdits(ctx context.Context) error {
	if err := m.repo.Commit(ctx); err != nil {
		return err
	}
	_, err := m.ListAll(ctx)
	return err
}

// CancelEdits discards everything staged since the list was opened.
func (m *Manager) CancelEdits(ctx context.Context) error {
	if err := m.repo.Rollback(ctx); err != nil {
		return err
	}
	_, err := m.ListAll(ctx)
	return err
}

func (m *Manager) at(index int) (*entry.Item, error) {
	if index < 0 || index >= len(m.items) {
		return nil, fmt.Errorf("listing: no %s at index %d", m.kind, index)
	}
	return m.items[index], nil
}

// itemSession stages item edits into the repository's open session. Commit
// and rollback belong to the list as a whole, so they are no-ops here.
type itemSession struct {
	repo  Repository
	isNew bool
}

func (s *itemSession) Stage(ctx context.Context, it *entry.Item) error {
	if s.isNew {
		if err := s.repo.AddItem(ctx, it); err != nil {
			return err
		}
		s.isNew = false
		return nil
	}
	return s.repo.UpdateItem(ctx, it)
}

func (s *itemSession) Commit(context.Context) error   { return nil }
func (s *itemSession) Rollback(context.Context) error { return nil }
