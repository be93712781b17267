// Package roles evaluates role/permission checks for dashboard access.
package roles

import (
	"context"
	"log/slog"
)

// Built-in roles. Creator holds every permission; viewer holds none of the
// grantable ones (the home dashboard never consults the evaluator).
const (
	RoleCreator = "creator"
	RoleViewer  = "viewer"
)

// PermissionStore resolves granted permissions for custom roles.
type PermissionStore interface {
	RoleHasPermission(ctx context.Context, role, permission string) (bool, error)
}

// Evaluator answers CanRoleDoThis for built-in and custom roles.
type Evaluator struct {
	store  PermissionStore
	logger *slog.Logger
}

// NewEvaluator creates an evaluator backed by the given permission store.
// If logger is nil, a discard logger is used.
func NewEvaluator(store PermissionStore, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{store: store, logger: logger}
}

// CanRoleDoThis reports whether the role holds the permission.
func (e *Evaluator) CanRoleDoThis(ctx context.Context, role, permission string) (bool, error) {
	switch role {
	case RoleCreator:
		return true, nil
	case RoleViewer:
		return false, nil
	}

	allowed, err := e.store.RoleHasPermission(ctx, role, permission)
	if err != nil {
		return false, err
	}

	e.logger.Debug("permission check",
		"role", role,
		"permission", permission,
		"allowed", allowed)

	return allowed, nil
}
