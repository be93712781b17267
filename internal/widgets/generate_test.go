package widgets

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridstack-labs/gridstack/internal/ids"
)

func staticDateField(name string) DateFieldResolver {
	return func(_ context.Context, _ string) (string, error) {
		return name, nil
	}
}

func TestGenerate_EmptyEntities(t *testing.T) {
	generated, err := Generate(t.Context(), ids.NewSequence("w"), nil, staticDateField(""))
	require.NoError(t, err)
	assert.Empty(t, generated)
}

func TestGenerate_CapsSummaryCardsAtEight(t *testing.T) {
	entities := make([]string, 10)
	for i := range entities {
		entities[i] = fmt.Sprintf("table_%d", i)
	}

	generated, err := Generate(t.Context(), ids.NewSequence("w"), entities, staticDateField("created_at"))
	require.NoError(t, err)
	require.Len(t, generated, 9, "8 summary cards + 1 table")

	for i := 0; i < 8; i++ {
		assert.Equal(t, WidgetTypeSummaryCard, generated[i].Type)
		assert.Equal(t, entities[i], generated[i].Entity)
	}

	tableWidget := generated[8]
	assert.Equal(t, WidgetTypeTable, tableWidget.Type)
	assert.Equal(t, entities[0], tableWidget.Entity, "table widget belongs to the first entity")
}

func TestGenerate_TwoEntities(t *testing.T) {
	generated, err := Generate(t.Context(), ids.NewSequence("w"), []string{"orders", "customers"}, staticDateField("created_at"))
	require.NoError(t, err)
	require.Len(t, generated, 3)

	assert.Equal(t, "w1", generated[0].ID)
	assert.Equal(t, WidgetTypeSummaryCard, generated[0].Type)
	assert.Equal(t, "orders", generated[0].Entity)
	assert.Equal(t, "Orders", generated[0].Title)
	assert.Equal(t, "dash.query('SELECT count(*) FROM orders')", generated[0].Script)
	assert.Equal(t, "created_at", generated[0].DateField)

	assert.Equal(t, "w2", generated[1].ID)
	assert.Equal(t, "customers", generated[1].Entity)

	assert.Equal(t, "w3", generated[2].ID)
	assert.Equal(t, WidgetTypeTable, generated[2].Type)
	assert.Equal(t, "orders", generated[2].Entity)
	assert.Equal(t, "dash.query('SELECT * FROM orders LIMIT 5')", generated[2].Script)
	assert.Empty(t, generated[2].Color, "table widgets carry no layout attributes")
	assert.Empty(t, generated[2].DateField)
}

func TestGenerate_ColorAndIconRotation(t *testing.T) {
	entities := make([]string, 8)
	for i := range entities {
		entities[i] = fmt.Sprintf("t%d", i)
	}

	generated, err := Generate(t.Context(), ids.NewSequence("w"), entities, staticDateField(""))
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		wantColor := DefaultColorPalette[i%(len(DefaultColorPalette)-1)]
		wantIcon := DefaultIconCatalog[i%(len(DefaultIconCatalog)-1)]
		assert.Equal(t, wantColor, generated[i].Color, "color for index %d", i)
		assert.Equal(t, wantIcon, generated[i].Icon, "icon for index %d", i)
	}
}

func TestGenerate_LastPaletteEntryNeverRotated(t *testing.T) {
	// The rotation modulus is len-1, so the final palette and icon
	// entries are unreachable for every index.
	last := DefaultColorPalette[len(DefaultColorPalette)-1]
	lastIcon := DefaultIconCatalog[len(DefaultIconCatalog)-1]

	entities := make([]string, maxSummaryCards)
	for i := range entities {
		entities[i] = fmt.Sprintf("t%d", i)
	}

	generated, err := Generate(t.Context(), ids.NewSequence("w"), entities, staticDateField(""))
	require.NoError(t, err)

	for _, w := range generated {
		assert.NotEqual(t, last, w.Color)
		assert.NotEqual(t, lastIcon, w.Icon)
	}
}

func TestGenerate_OutputOrderIgnoresResolutionOrder(t *testing.T) {
	// Earlier entities resolve slower; output must still follow input
	// order with ids minted in input order.
	entities := []string{"a", "b", "c", "d"}
	resolver := func(_ context.Context, entity string) (string, error) {
		switch entity {
		case "a":
			time.Sleep(30 * time.Millisecond)
		case "b":
			time.Sleep(15 * time.Millisecond)
		}
		return "ts_" + entity, nil
	}

	generated, err := Generate(t.Context(), ids.NewSequence("w"), entities, resolver)
	require.NoError(t, err)
	require.Len(t, generated, 5)

	for i, entity := range entities {
		assert.Equal(t, fmt.Sprintf("w%d", i+1), generated[i].ID)
		assert.Equal(t, entity, generated[i].Entity)
		assert.Equal(t, "ts_"+entity, generated[i].DateField)
	}
}

func TestGenerate_ResolverErrorPropagates(t *testing.T) {
	resolver := func(_ context.Context, entity string) (string, error) {
		if entity == "customers" {
			return "", fmt.Errorf("metadata unavailable")
		}
		return "", nil
	}

	_, err := Generate(t.Context(), ids.NewSequence("w"), []string{"orders", "customers"}, resolver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customers")
}

func TestHumanizeEntityName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"orders", "Orders"},
		{"user_profiles", "User Profiles"},
		{"sales-report", "Sales Report"},
		{"CUSTOMERS", "Customers"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeEntityName(tt.in))
		})
	}
}
