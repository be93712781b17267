package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gridstack-labs/gridstack/internal/widgets"
)

// GetItemOrFail retrieves a widget config by id.
// A missing id fails with widgets.ErrNotFound.
func (s *SQLiteStore) GetItemOrFail(ctx context.Context, id string) (*widgets.WidgetConfig, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT config FROM widget_configs WHERE id = ?`, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("widget config %q: %w", id, widgets.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get widget config: %w", err)
	}

	return decodeWidget(id, raw)
}

// CreateItem persists a new widget config under the given id.
func (s *SQLiteStore) CreateItem(ctx context.Context, id string, widget *widgets.WidgetConfig) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	raw, err := json.Marshal(widget)
	if err != nil {
		return fmt.Errorf("failed to encode widget config: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO widget_configs (id, config, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, string(raw), now, now,
	); err != nil {
		return fmt.Errorf("failed to create widget config: %w", err)
	}
	return nil
}

// UpdateItem replaces an existing widget config in place.
// A missing id fails with widgets.ErrNotFound.
func (s *SQLiteStore) UpdateItem(ctx context.Context, id string, widget *widgets.WidgetConfig) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	raw, err := json.Marshal(widget)
	if err != nil {
		return fmt.Errorf("failed to encode widget config: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE widget_configs SET config = ?, updated_at = ? WHERE id = ?`,
		string(raw), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update widget config: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("widget config %q: %w", id, widgets.ErrNotFound)
	}
	return nil
}

// RemoveItem deletes a widget config. Removing an absent id is a no-op so
// cleanup stays idempotent.
func (s *SQLiteStore) RemoveItem(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM widget_configs WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("failed to remove widget config: %w", err)
	}
	return nil
}

// GetAllItemsIn resolves the given ids, silently skipping ids with no
// stored record.
func (s *SQLiteStore) GetAllItemsIn(ctx context.Context, ids []string) ([]*widgets.WidgetConfig, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	//nolint:gosec // placeholders is a generated "?,?,..." list, not input
	query := fmt.Sprintf(`SELECT id, config FROM widget_configs WHERE id IN (%s)`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get widget configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*widgets.WidgetConfig
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan widget config: %w", err)
		}
		widget, err := decodeWidget(id, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, widget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating widget configs: %w", err)
	}

	return items, nil
}

func decodeWidget(id, raw string) (*widgets.WidgetConfig, error) {
	var widget widgets.WidgetConfig
	if err := json.Unmarshal([]byte(raw), &widget); err != nil {
		return nil, fmt.Errorf("failed to decode widget config %q: %w", id, err)
	}
	// The row key is authoritative for identity
	widget.ID = id
	return &widget, nil
}
