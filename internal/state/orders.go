package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// GetItemOrder returns the stored order for a list, or an empty slice when
// the list has never been written.
func (s *SQLiteStore) GetItemOrder(ctx context.Context, listID string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT item_order FROM list_orders WHERE list_id = ?`, listID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list order: %w", err)
	}

	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, fmt.Errorf("failed to decode list order %q: %w", listID, err)
	}
	return order, nil
}

// UpsertOrder replaces a list's order wholesale, creating the record when
// absent. An empty order is stored, not deleted.
func (s *SQLiteStore) UpsertOrder(ctx context.Context, listID string, ids []string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if ids == nil {
		ids = []string{}
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode list order: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO list_orders (list_id, item_order, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(list_id) DO UPDATE SET item_order = excluded.item_order, updated_at = excluded.updated_at`,
		listID, string(raw), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to upsert list order: %w", err)
	}
	return nil
}

// AppendToList adds an id to the end of a list's order, creating the list
// when absent. An id already present keeps its position.
func (s *SQLiteStore) AppendToList(ctx context.Context, listID, id string) error {
	order, err := s.GetItemOrder(ctx, listID)
	if err != nil {
		return err
	}

	if slices.Contains(order, id) {
		return nil
	}
	return s.UpsertOrder(ctx, listID, append(order, id))
}

// RemoveFromList drops an id from a list's order. Removing an id that is
// not present, or from a list that does not exist, is a no-op.
func (s *SQLiteStore) RemoveFromList(ctx context.Context, listID, id string) error {
	order, err := s.GetItemOrder(ctx, listID)
	if err != nil {
		return err
	}
	if len(order) == 0 {
		return nil
	}

	filtered := slices.DeleteFunc(slices.Clone(order), func(item string) bool {
		return item == id
	})
	if len(filtered) == len(order) {
		return nil
	}
	return s.UpsertOrder(ctx, listID, filtered)
}
