package listing

import (
	"context"
	"errors"
	"sort"

	"tableflip.dev/diary/pkg/entry"
)

// stubRepo keeps committed and staged copies of the items, mimicking a
// session over a relational store.
type stubRepo struct {
	committed map[string]entry.Item
	staged    map[string]entry.Item
	commits   int
	rollbacks int
}

func newStubRepo(items ...entry.Item) *stubRepo {
	r := &stubRepo{committed: map[string]entry.Item{}}
	for _, it := range items {
		r.committed[it.ID] = it
	}
	return r
}

func (r *stubRepo) view() map[string]entry.Item {
	if r.staged != nil {
		return r.staged
	}
	return r.committed
}

func (r *stubRepo) stage() map[string]entry.Item {
	if r.staged == nil {
		r.staged = make(map[string]entry.Item, len(r.committed))
		for k, v := range r.committed {
			r.staged[k] = v
		}
	}
	return r.staged
}

func (r *stubRepo) ListItems(_ context.Context, kind entry.Kind) ([]*entry.Item, error) {
	out := make([]*entry.Item, 0)
	for _, it := range r.view() {
		if it.Kind == kind {
			cp := it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRepo) AddItem(_ context.Context, it *entry.Item) error {
	for _, existing := range r.view() {
		if existing.Kind == it.Kind && existing.Name == it.Name {
			return errors.New("duplicate")
		}
	}
	r.stage()[it.ID] = *it
	return nil
}

func (r *stubRepo) UpdateItem(_ context.Context, it *entry.Item) error {
	if _, ok := r.view()[it.ID]; !ok {
		return errors.New("no such item")
	}
	r.stage()[it.ID] = *it
	return nil
}

func (r *stubRepo) Commit(context.Context) error {
	r.commits++
	if r.staged != nil {
		r.committed = r.staged
		r.staged = nil
	}
	return nil
}

func (r *stubRepo) Rollback(context.Context) error {
	r.rollbacks++
	r.staged = nil
	return nil
}
