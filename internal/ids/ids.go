// Package ids provides widget identifier generation.
// The Generator interface exists so tests can supply deterministic ids
// while production code uses random UUIDs.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator mints opaque, globally unique identifiers.
type Generator interface {
	NewID() string
}

// NewRandom returns a Generator backed by random UUIDs.
func NewRandom() Generator {
	return randomGenerator{}
}

type randomGenerator struct{}

func (randomGenerator) NewID() string {
	return uuid.NewString()
}

// NewSequence returns a Generator that produces "<prefix>1", "<prefix>2", ...
// in call order. Intended for tests that assert on identifier values.
func NewSequence(prefix string) Generator {
	return &sequenceGenerator{prefix: prefix}
}

type sequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *sequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}
