// Package discovery enumerates data entities from the connected database.
// Entities are base tables in the adapter's default schema; the listing
// order is the adapter's sorted table order, which keeps default widget
// generation deterministic.
package discovery

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gridstack-labs/gridstack/internal/adapter"
)

// Service resolves active entities and their fields through a database
// adapter. Entities named in the hidden list are excluded from discovery,
// mirroring entity disable switches in the enclosing system.
type Service struct {
	db     adapter.Adapter
	hidden map[string]struct{}
	logger *slog.Logger
}

// New creates a discovery service. A nil logger uses a discard logger.
func New(db adapter.Adapter, hiddenEntities []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	hidden := make(map[string]struct{}, len(hiddenEntities))
	for _, name := range hiddenEntities {
		hidden[name] = struct{}{}
	}

	return &Service{db: db, hidden: hidden, logger: logger}
}

// GetActiveEntities returns the non-hidden base tables in stable order.
func (s *Service) GetActiveEntities(ctx context.Context) ([]string, error) {
	tables, err := s.db.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	entities := make([]string, 0, len(tables))
	for _, table := range tables {
		if _, ok := s.hidden[table]; ok {
			continue
		}
		entities = append(entities, table)
	}

	s.logger.Debug("discovered entities",
		"total", len(tables),
		"active", len(entities))

	return entities, nil
}

// GetEntityFirstFieldType returns the name of the entity's first column
// matching the requested kind, or an empty string when none matches.
func (s *Service) GetEntityFirstFieldType(ctx context.Context, entity, kind string) (string, error) {
	meta, err := s.db.GetTableMetadata(ctx, entity)
	if err != nil {
		return "", err
	}

	for _, col := range meta.Columns {
		if matchesFieldKind(col.Type, kind) {
			return col.Name, nil
		}
	}
	return "", nil
}

// matchesFieldKind maps raw SQL column types onto coarse field kinds.
func matchesFieldKind(columnType, kind string) bool {
	upper := strings.ToUpper(columnType)
	switch kind {
	case "date":
		return strings.Contains(upper, "DATE") || strings.Contains(upper, "TIMESTAMP")
	case "number":
		return strings.Contains(upper, "INT") ||
			strings.Contains(upper, "NUMERIC") ||
			strings.Contains(upper, "DECIMAL") ||
			strings.Contains(upper, "DOUBLE") ||
			strings.Contains(upper, "REAL")
	case "text":
		return strings.Contains(upper, "CHAR") || strings.Contains(upper, "TEXT")
	default:
		return false
	}
}
