package store

import (
	"context"
	"fmt"

	"tableflip.dev/diary/pkg/entry"
)

func scanItems(ctx context.Context, q queryer, query string, args ...any) ([]*entry.Item, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entry.Item, 0)
	for rows.Next() {
		var (
			it     entry.Item
			kind   string
			active int
		)
		if err := rows.Scan(&it.ID, &kind, &it.Name, &active); err != nil {
			return nil, err
		}
		it.Kind = entry.Kind(kind)
		it.Active = active != 0
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListItems returns every item of kind, active or not, ordered by name.
func (s *Store) ListItems(ctx context.Context, kind entry.Kind) ([]*entry.Item, error) {
	items, err := scanItems(ctx, s.reader(),
		`SELECT id, kind, name, active FROM items WHERE kind = ? ORDER BY name COLLATE NOCASE, id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("store: list %s items: %w", kind, err)
	}
	return items, nil
}

// AddItem stages a new item. A duplicate name within the kind yields
// ErrConflict.
func (s *Store) AddItem(ctx context.Context, it *entry.Item) error {
	tx, err := s.session(ctx)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, kind, name, active) VALUES (?, ?, ?, ?)`,
		it.ID, string(it.Kind), it.Name, boolInt(it.Active))
	if isConstraint(err) {
		return fmt.Errorf("%w: %s %q", ErrConflict, it.Kind, it.Name)
	}
	if err != nil {
		return fmt.Errorf("store: add item: %w", err)
	}
	s.log.WithField("kind", it.Kind).Debug("item staged")
	return nil
}

// UpdateItem stages the field values of it onto its row.
func (s *Store) UpdateItem(ctx context.Context, it *entry.Item) error {
	tx, err := s.session(ctx)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE items SET name = ?, active = ? WHERE id = ?`,
		it.Name, boolInt(it.Active), it.ID)
	if isConstraint(err) {
		return fmt.Errorf("%w: %s %q", ErrConflict, it.Kind, it.Name)
	}
	if err != nil {
		return fmt.Errorf("store: update item %s: %w", it.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: update item %s: no such item", it.ID)
	}
	return nil
}

// AttachItem links an item to a record. Linking twice is a no-op.
func (s *Store) AttachItem(ctx context.Context, recordID int64, itemID string) error {
	tx, err := s.session(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO record_items (record_id, item_id) VALUES (?, ?)`, recordID, itemID); err != nil {
		return fmt.Errorf("store: attach item: %w", err)
	}
	return nil
}

// DetachItem removes the link between a record and an item.
func (s *Store) DetachItem(ctx context.Context, recordID int64, itemID string) error {
	tx, err := s.session(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM record_items WHERE record_id = ? AND item_id = ?`, recordID, itemID); err != nil {
		return fmt.Errorf("store: detach item: %w", err)
	}
	return nil
}

// ItemsForEntry lists the items of kind linked to a record, by name.
func (s *Store) ItemsForEntry(ctx context.Context, recordID int64, kind entry.Kind) ([]*entry.Item, error) {
	items, err := scanItems(ctx, s.reader(), `
		SELECT i.id, i.kind, i.name, i.active
		FROM items i JOIN record_items ri ON ri.item_id = i.id
		WHERE ri.record_id = ? AND i.kind = ?
		ORDER BY i.name COLLATE NOCASE, i.id`, recordID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("store: items for entry %d: %w", recordID, err)
	}
	return items, nil
}
