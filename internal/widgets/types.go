// Package widgets implements dashboard widget definitions, default widget
// generation, and the dashboard composition service.
package widgets

import (
	"context"
)

// HomeDashboardID is the reserved identifier of the home dashboard.
// The home dashboard is viewable by every role without a permission check.
const HomeDashboardID = "__home__widgets"

// FieldKindDate selects date-typed columns during field resolution.
const FieldKindDate = "date"

// WidgetType is the display kind of a widget.
type WidgetType string

const (
	// WidgetTypeSummaryCard renders a single aggregate value.
	WidgetTypeSummaryCard WidgetType = "summary-card"

	// WidgetTypeTable renders a small row listing.
	WidgetTypeTable WidgetType = "table"
)

// WidgetConfig is a stored widget definition. The identifier is minted at
// creation and immutable thereafter. Script text is opaque to this layer;
// only the sandbox ever interprets it.
type WidgetConfig struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Type   WidgetType `json:"_type"`
	Entity string     `json:"entity"`

	// Layout attributes, summary cards only.
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon,omitempty"`
	DateField string `json:"dateField,omitempty"`

	Script string `json:"script"`
}

// ConfigStore is the keyed persistence surface for widget definitions.
type ConfigStore interface {
	GetItemOrFail(ctx context.Context, id string) (*WidgetConfig, error)
	CreateItem(ctx context.Context, id string, widget *WidgetConfig) error
	UpdateItem(ctx context.Context, id string, widget *WidgetConfig) error
	RemoveItem(ctx context.Context, id string) error

	// GetAllItemsIn resolves the given ids, silently skipping ids with no
	// stored record. Result order is unspecified; use SortByOrder.
	GetAllItemsIn(ctx context.Context, ids []string) ([]*WidgetConfig, error)
}

// OrderStore persists per-dashboard widget ordering.
type OrderStore interface {
	// GetItemOrder returns the stored order, or an empty slice when the
	// dashboard has never been populated.
	GetItemOrder(ctx context.Context, listID string) ([]string, error)
	UpsertOrder(ctx context.Context, listID string, ids []string) error
	AppendToList(ctx context.Context, listID, id string) error
	RemoveFromList(ctx context.Context, listID, id string) error
}

// PermissionEvaluator answers role/permission questions.
type PermissionEvaluator interface {
	CanRoleDoThis(ctx context.Context, role, permission string) (bool, error)
}

// EntityDiscovery enumerates data entities and their fields.
type EntityDiscovery interface {
	GetActiveEntities(ctx context.Context) ([]string, error)

	// GetEntityFirstFieldType returns the name of the first field of the
	// given kind, or an empty string when the entity has none.
	GetEntityFirstFieldType(ctx context.Context, entity, kind string) (string, error)
}

// QueryExecutor runs SQL issued by widget scripts.
type QueryExecutor interface {
	RunQuery(ctx context.Context, sqlText string) ([]map[string]any, error)
}

// ViewPermission returns the dashboard-scoped view permission token.
func ViewPermission(dashboardID string) string {
	return "DASHBOARD_VIEW:" + dashboardID
}

// SortByOrder arranges items to follow orderedIDs. Ids without a matching
// item are dropped; items without a position are dropped too, so a stale
// order entry never surfaces a phantom widget.
func SortByOrder(orderedIDs []string, items []*WidgetConfig) []*WidgetConfig {
	byID := make(map[string]*WidgetConfig, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	sorted := make([]*WidgetConfig, 0, len(items))
	for _, id := range orderedIDs {
		if item, ok := byID[id]; ok {
			sorted = append(sorted, item)
		}
	}
	return sorted
}
