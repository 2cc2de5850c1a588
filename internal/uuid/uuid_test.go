package uuid_test

import (
	"strings"
	"testing"

	"github.com/KirkDiggler/combat-engine/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrefixedGenerator(t *testing.T) {
	gen := uuid.NewPrefixedGenerator("ent")

	first := gen.New()
	second := gen.New()

	assert.True(t, strings.HasPrefix(first, "ent_"))
	assert.NotEqual(t, first, second)
}

func TestSequenceGenerator(t *testing.T) {
	gen := uuid.NewSequenceGenerator("cond")

	assert.Equal(t, "cond-1", gen.New())
	assert.Equal(t, "cond-2", gen.New())
}
