// Package uuid generates identifiers behind an interface so tests can pin them.
package uuid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator generates random v4 UUIDs, optionally prefixed ("ent_<uuid>")
type GoogleUUIDGenerator struct {
	prefix string
}

// New generates a new identifier
func (g *GoogleUUIDGenerator) New() string {
	if g.prefix == "" {
		return uuid.New().String()
	}
	return g.prefix + "_" + uuid.New().String()
}

// NewGoogleUUIDGenerator creates a generator of bare UUIDs
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// NewPrefixedGenerator creates a generator whose ids carry a readable kind prefix
func NewPrefixedGenerator(prefix string) *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{prefix: prefix}
}

// SequenceGenerator hands out predictable ids, for tests and the debug CLI
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

func (g *SequenceGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}
