package widgets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridstack-labs/gridstack/internal/ids"
	"github.com/gridstack-labs/gridstack/internal/sandbox"
)

// sandboxSymbol is the capability binding name used in generated scripts.
const sandboxSymbol = sandbox.CapabilitySymbol

// Config holds the composition service's collaborators. Widgets, Order,
// Permissions, Discovery, and Queries are required; the rest default.
type Config struct {
	Widgets     ConfigStore
	Order       OrderStore
	Permissions PermissionEvaluator
	Discovery   EntityDiscovery
	Queries     QueryExecutor

	// IDs is the identifier generator (optional, random UUIDs if nil)
	IDs ids.Generator

	// Sandbox executes widget scripts (optional, an unbounded sandbox if nil)
	Sandbox *sandbox.Sandbox

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Service composes dashboards: it resolves widget membership and order,
// seeds empty dashboards with defaults, gates access by role, and runs
// widget scripts through the sandbox.
type Service struct {
	widgets     ConfigStore
	order       OrderStore
	permissions PermissionEvaluator
	discovery   EntityDiscovery
	queries     QueryExecutor
	ids         ids.Generator
	sandbox     *sandbox.Sandbox
	logger      *slog.Logger
}

// New creates a composition service from explicitly injected collaborators.
func New(cfg Config) (*Service, error) {
	switch {
	case cfg.Widgets == nil:
		return nil, fmt.Errorf("widget store is required")
	case cfg.Order == nil:
		return nil, fmt.Errorf("order store is required")
	case cfg.Permissions == nil:
		return nil, fmt.Errorf("permission evaluator is required")
	case cfg.Discovery == nil:
		return nil, fmt.Errorf("entity discovery is required")
	case cfg.Queries == nil:
		return nil, fmt.Errorf("query executor is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	idGen := cfg.IDs
	if idGen == nil {
		idGen = ids.NewRandom()
	}

	sb := cfg.Sandbox
	if sb == nil {
		sb = sandbox.New(sandbox.Config{Logger: logger})
	}

	return &Service{
		widgets:     cfg.Widgets,
		order:       cfg.Order,
		permissions: cfg.Permissions,
		discovery:   cfg.Discovery,
		queries:     cfg.Queries,
		ids:         idGen,
		sandbox:     sb,
		logger:      logger,
	}, nil
}

// ListWidgets returns the dashboard's widgets in stored order, populating
// the dashboard with defaults on first access. Every dashboard except home
// requires the dashboard-scoped view permission; denial is masked so the
// caller cannot tell whether the dashboard exists.
func (s *Service) ListWidgets(ctx context.Context, dashboardID, role string) ([]*WidgetConfig, error) {
	if dashboardID != HomeDashboardID {
		allowed, err := s.permissions.CanRoleDoThis(ctx, role, ViewPermission(dashboardID))
		if err != nil {
			return nil, fmt.Errorf("checking dashboard permission: %w", err)
		}
		if !allowed {
			return nil, ErrDashboardForbidden
		}
	}

	return s.listWidgetsToShow(ctx, dashboardID)
}

func (s *Service) listWidgetsToShow(ctx context.Context, dashboardID string) ([]*WidgetConfig, error) {
	orderIDs, err := s.order.GetItemOrder(ctx, dashboardID)
	if err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return s.populateDefaultWidgets(ctx, dashboardID)
	}

	items, err := s.widgets.GetAllItemsIn(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	// Dangling order entries are filtered here, never an error.
	return SortByOrder(orderIDs, items), nil
}

// populateDefaultWidgets transitions an uninitialized dashboard to
// populated: generate, persist each widget, then record the order.
func (s *Service) populateDefaultWidgets(ctx context.Context, dashboardID string) ([]*WidgetConfig, error) {
	entities, err := s.discovery.GetActiveEntities(ctx)
	if err != nil {
		return nil, err
	}

	generated, err := Generate(ctx, s.ids, entities, func(ctx context.Context, entity string) (string, error) {
		return s.discovery.GetEntityFirstFieldType(ctx, entity, FieldKindDate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("populating dashboard with default widgets",
		"dashboard", dashboardID,
		"widgets", len(generated))

	for _, widget := range generated {
		if err := s.widgets.CreateItem(ctx, widget.ID, widget); err != nil {
			return nil, err
		}
	}

	orderIDs := make([]string, len(generated))
	for i, widget := range generated {
		orderIDs[i] = widget.ID
	}
	if err := s.order.UpsertOrder(ctx, dashboardID, orderIDs); err != nil {
		return nil, err
	}

	return generated, nil
}

// CreateWidget persists the widget, then appends it to the dashboard's
// order. The store write goes first so the order never references an id
// that was never persisted.
func (s *Service) CreateWidget(ctx context.Context, widget *WidgetConfig, dashboardID string) error {
	if widget.ID == "" {
		widget.ID = s.ids.NewID()
	}

	if err := s.widgets.CreateItem(ctx, widget.ID, widget); err != nil {
		return err
	}
	return s.order.AppendToList(ctx, dashboardID, widget.ID)
}

// UpdateWidgetList replaces the dashboard's stored order wholesale.
// Ids are not validated here; dangling entries are dropped at read time.
func (s *Service) UpdateWidgetList(ctx context.Context, dashboardID string, orderedIDs []string) error {
	return s.order.UpsertOrder(ctx, dashboardID, orderedIDs)
}

// UpdateWidget updates a widget in place without changing its position in
// any dashboard order.
func (s *Service) UpdateWidget(ctx context.Context, widgetID string, widget *WidgetConfig) error {
	return s.widgets.UpdateItem(ctx, widgetID, widget)
}

// RemoveWidget deletes the widget record and drops its id from the
// dashboard's order. The two writes are best-effort, not atomic; removal
// proceeds even when the record is already gone.
func (s *Service) RemoveWidget(ctx context.Context, widgetID, dashboardID string) error {
	if err := s.widgets.RemoveItem(ctx, widgetID); err != nil {
		return err
	}
	return s.order.RemoveFromList(ctx, dashboardID, widgetID)
}

// RunWidgetScript loads the widget and executes its script for the given
// principal. A missing widget is a distinct not-found error; script
// failures come back inside the outcome.
func (s *Service) RunWidgetScript(ctx context.Context, widgetID string, user sandbox.Principal) (sandbox.Outcome, error) {
	widget, err := s.widgets.GetItemOrFail(ctx, widgetID)
	if err != nil {
		return sandbox.Outcome{}, err
	}
	return s.RunScript(ctx, widget.Script, user), nil
}

// RunScript executes ad hoc script text for the given principal, outside
// any stored widget. Used for script authoring and preview.
func (s *Service) RunScript(ctx context.Context, script string, user sandbox.Principal) sandbox.Outcome {
	capCtx := sandbox.CapabilityContext{
		User:  user,
		Query: s.queries.RunQuery,
	}
	return s.sandbox.Execute(ctx, script, capCtx)
}
