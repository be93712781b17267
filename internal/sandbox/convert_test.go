package sandbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.starlark.net/starlark"
)

func TestGoToStarlark_RowValues(t *testing.T) {
	// The shapes database row scans actually produce.
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	v, err := GoToStarlark(map[string]any{
		"id":      int64(7),
		"name":    []byte("orders"),
		"ratio":   0.5,
		"active":  true,
		"created": ts,
		"note":    nil,
	})
	require.NoError(t, err)

	dict, ok := v.(*starlark.Dict)
	require.True(t, ok, "expected dict, got %T", v)

	got, err := ToGo(dict)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":      int64(7),
		"name":    "orders",
		"ratio":   0.5,
		"active":  true,
		"created": "2024-03-01T12:00:00Z",
		"note":    nil,
	}, got)
}

func TestGoToStarlark_UnsupportedType(t *testing.T) {
	_, err := GoToStarlark(struct{ X int }{X: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestRowsToStarlark_PreservesRowOrder(t *testing.T) {
	v, err := RowsToStarlark([]map[string]any{
		{"n": int64(1)},
		{"n": int64(2)},
		{"n": int64(3)},
	})
	require.NoError(t, err)

	got, err := ToGo(v)
	require.NoError(t, err)

	rows, ok := got.([]any)
	require.True(t, ok)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, map[string]any{"n": int64(i + 1)}, row)
	}
}
