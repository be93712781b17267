package widgets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gridstack-labs/gridstack/internal/ids"
)

// maxSummaryCards caps how many entities are auto-widgeted: entities past
// the cap get no default card.
const maxSummaryCards = 8

// tableRowLimit bounds the default table widget's row count.
const tableRowLimit = 5

// DateFieldResolver resolves an entity's first date-typed field name, or
// an empty string when the entity has none.
type DateFieldResolver func(ctx context.Context, entity string) (string, error)

// Generate synthesizes the default widget set for the given entities: one
// summary card per entity up to the cap, plus one table widget for the
// first entity. An empty entity list produces an empty result.
//
// Identifiers are minted in input order before date fields are resolved,
// so the output is deterministic for a deterministic generator even though
// resolution fans out concurrently.
func Generate(ctx context.Context, gen ids.Generator, entities []string, resolveDateField DateFieldResolver) ([]*WidgetConfig, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	cards := entities
	if len(cards) > maxSummaryCards {
		cards = cards[:maxSummaryCards]
	}

	generated := make([]*WidgetConfig, 0, len(cards)+1)
	for i, entity := range cards {
		generated = append(generated, &WidgetConfig{
			ID:     gen.NewID(),
			Title:  humanizeEntityName(entity),
			Type:   WidgetTypeSummaryCard,
			Entity: entity,
			Color:  cycleEntry(DefaultColorPalette, i),
			Icon:   cycleEntry(DefaultIconCatalog, i),
			Script: countScript(entity),
		})
	}

	// Fan out per-entity date field resolution; results land back in the
	// slot minted for each entity, so completion order is irrelevant.
	g, gctx := errgroup.WithContext(ctx)
	for i, entity := range cards {
		g.Go(func() error {
			dateField, err := resolveDateField(gctx, entity)
			if err != nil {
				return fmt.Errorf("resolving date field for %q: %w", entity, err)
			}
			generated[i].DateField = dateField
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	first := entities[0]
	generated = append(generated, &WidgetConfig{
		ID:     gen.NewID(),
		Title:  humanizeEntityName(first),
		Type:   WidgetTypeTable,
		Entity: first,
		Script: tableScript(first),
	})

	return generated, nil
}

func countScript(entity string) string {
	return fmt.Sprintf("%s.query('SELECT count(*) FROM %s')", sandboxSymbol, entity)
}

func tableScript(entity string) string {
	return fmt.Sprintf("%s.query('SELECT * FROM %s LIMIT %d')", sandboxSymbol, entity, tableRowLimit)
}
