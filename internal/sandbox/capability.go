package sandbox

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// CapabilitySymbol is the single global through which a script reaches the
// host. Everything else is unreachable from script code.
const CapabilitySymbol = "dash"

// QueryFunc executes a SQL statement against the data backend chosen by the
// host. Scripts never pick the backend; they only supply query text.
type QueryFunc func(ctx context.Context, sqlText string) ([]map[string]any, error)

// Principal is the invoking user's identity as exposed to scripts.
// It deliberately carries no credentials or session material.
type Principal struct {
	Username string
	Name     string
	Role     string
}

// ToStarlark converts the principal to an immutable Starlark struct.
func (p Principal) ToStarlark() starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("user"), starlark.StringDict{
		"username": starlark.String(p.Username),
		"name":     starlark.String(p.Name),
		"role":     starlark.String(p.Role),
	})
}

// CapabilityContext is the per-invocation bundle handed to a script.
// It is constructed once per execution and never persisted.
type CapabilityContext struct {
	User  Principal
	Query QueryFunc
}

// toStarlark builds the capability object bound to CapabilitySymbol.
// The request context is captured so query calls honor host deadlines.
func (c CapabilityContext) toStarlark(ctx context.Context) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String(CapabilitySymbol), starlark.StringDict{
		"user":  c.User.ToStarlark(),
		"query": starlark.NewBuiltin("query", c.queryBuiltin(ctx)),
	})
}

func (c CapabilityContext) queryBuiltin(ctx context.Context) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var sqlText string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &sqlText); err != nil {
			return nil, err
		}

		if c.Query == nil {
			return nil, fmt.Errorf("no query capability bound")
		}

		rows, err := c.Query(ctx, sqlText)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}

		return RowsToStarlark(rows)
	}
}
