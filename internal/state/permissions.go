package state

import (
	"context"
	"fmt"
)

// GrantPermission records that a role holds a permission. Granting twice
// is a no-op.
func (s *SQLiteStore) GrantPermission(ctx context.Context, role, permission string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO role_permissions (role, permission) VALUES (?, ?)
		 ON CONFLICT(role, permission) DO NOTHING`,
		role, permission,
	); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

// RevokePermission removes a permission from a role. Revoking a
// permission the role does not hold is a no-op.
func (s *SQLiteStore) RevokePermission(ctx context.Context, role, permission string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM role_permissions WHERE role = ? AND permission = ?`,
		role, permission,
	); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}

// RoleHasPermission reports whether a role holds a permission.
func (s *SQLiteStore) RoleHasPermission(ctx context.Context, role, permission string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM role_permissions WHERE role = ? AND permission = ?`,
		role, permission,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return count > 0, nil
}
