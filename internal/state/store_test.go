package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridstack-labs/gridstack/internal/testutil"
	"github.com/gridstack-labs/gridstack/internal/widgets"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestWidgetConfigLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	widget := &widgets.WidgetConfig{
		ID:     "w1",
		Title:  "Orders",
		Type:   widgets.WidgetTypeSummaryCard,
		Entity: "orders",
		Color:  "red",
		Icon:   "shopping-cart",
		Script: "dash.query('SELECT count(*) FROM orders')",
	}
	require.NoError(t, store.CreateItem(ctx, widget.ID, widget))

	got, err := store.GetItemOrFail(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, widget, got)

	widget.Title = "All Orders"
	require.NoError(t, store.UpdateItem(ctx, "w1", widget))

	got, err = store.GetItemOrFail(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "All Orders", got.Title)

	require.NoError(t, store.RemoveItem(ctx, "w1"))
	_, err = store.GetItemOrFail(ctx, "w1")
	assert.ErrorIs(t, err, widgets.ErrNotFound)
}

func TestGetItemOrFail_MissingID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetItemOrFail(t.Context(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, widgets.ErrNotFound)
}

func TestUpdateItem_MissingID(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateItem(t.Context(), "nope", &widgets.WidgetConfig{ID: "nope"})
	assert.ErrorIs(t, err, widgets.ErrNotFound)
}

func TestRemoveItem_AbsentIDIsNoOp(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.RemoveItem(t.Context(), "nope"))
}

func TestGetAllItemsIn(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	for _, id := range []string{"w1", "w2", "w3"} {
		require.NoError(t, store.CreateItem(ctx, id, &widgets.WidgetConfig{ID: id, Title: id}))
	}

	t.Run("skips missing ids", func(t *testing.T) {
		items, err := store.GetAllItemsIn(ctx, []string{"w3", "ghost", "w1"})
		require.NoError(t, err)
		require.Len(t, items, 2)

		var gotIDs []string
		for _, item := range items {
			gotIDs = append(gotIDs, item.ID)
		}
		assert.ElementsMatch(t, []string{"w1", "w3"}, gotIDs)
	})

	t.Run("empty input", func(t *testing.T) {
		items, err := store.GetAllItemsIn(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestRowKeyWinsOverEncodedID(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	// A widget stored under "canonical" reports that id even when its
	// encoded config claims otherwise.
	require.NoError(t, store.CreateItem(ctx, "canonical", &widgets.WidgetConfig{ID: "stale"}))

	got, err := store.GetItemOrFail(ctx, "canonical")
	require.NoError(t, err)
	assert.Equal(t, "canonical", got.ID)
}

func TestListOrderLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	order, err := store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Empty(t, order, "unwritten list reads as empty")

	require.NoError(t, store.UpsertOrder(ctx, "dash", []string{"w1", "w2"}))
	order, err = store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w2"}, order)

	require.NoError(t, store.UpsertOrder(ctx, "dash", []string{"w2", "w1", "w3"}))
	order, err = store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Equal(t, []string{"w2", "w1", "w3"}, order)
}

func TestUpsertOrder_EmptyListIsStoredNotDeleted(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.UpsertOrder(ctx, "dash", []string{"w1"}))
	require.NoError(t, store.UpsertOrder(ctx, "dash", nil))

	order, err := store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Equal(t, []string{}, order)
}

func TestAppendToList(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.AppendToList(ctx, "dash", "w1"))
	require.NoError(t, store.AppendToList(ctx, "dash", "w2"))

	// Appending an existing id keeps its position.
	require.NoError(t, store.AppendToList(ctx, "dash", "w1"))

	order, err := store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w2"}, order)
}

func TestRemoveFromList(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.UpsertOrder(ctx, "dash", []string{"w1", "w2", "w3"}))

	require.NoError(t, store.RemoveFromList(ctx, "dash", "w2"))
	order, err := store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w3"}, order)

	// Absent id, and absent list, are both no-ops.
	require.NoError(t, store.RemoveFromList(ctx, "dash", "ghost"))
	require.NoError(t, store.RemoveFromList(ctx, "nolist", "w1"))

	order, err = store.GetItemOrder(ctx, "dash")
	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w3"}, order)
}

func TestRolePermissions(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	ok, err := store.RoleHasPermission(ctx, "analyst", "DASHBOARD_VIEW:finance")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.GrantPermission(ctx, "analyst", "DASHBOARD_VIEW:finance"))
	// Granting twice is fine.
	require.NoError(t, store.GrantPermission(ctx, "analyst", "DASHBOARD_VIEW:finance"))

	ok, err = store.RoleHasPermission(ctx, "analyst", "DASHBOARD_VIEW:finance")
	require.NoError(t, err)
	assert.True(t, ok)

	// The grant is scoped to that role and permission.
	ok, err = store.RoleHasPermission(ctx, "viewer", "DASHBOARD_VIEW:finance")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = store.RoleHasPermission(ctx, "analyst", "DASHBOARD_VIEW:sales")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.RevokePermission(ctx, "analyst", "DASHBOARD_VIEW:finance"))
	ok, err = store.RoleHasPermission(ctx, "analyst", "DASHBOARD_VIEW:finance")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOperationsFailBeforeOpen(t *testing.T) {
	store := NewSQLiteStore(nil)

	_, err := store.GetItemOrFail(t.Context(), "w1")
	assert.ErrorContains(t, err, "not opened")

	_, err = store.GetItemOrder(t.Context(), "dash")
	assert.ErrorContains(t, err, "not opened")
}
