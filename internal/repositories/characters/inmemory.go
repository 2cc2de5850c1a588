package characters

import (
	"context"
	"sort"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and the debug CLI
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*Character
	ids        uuid.Generator
	now        func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters: make(map[string]*Character),
		ids:        uuid.NewPrefixedGenerator("char"),
		now:        time.Now,
	}
}

// Create stores a new character, assigning an ID when it has none
func (r *InMemoryRepository) Create(_ context.Context, character *Character) error {
	if character == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" {
		character.ID = r.ids.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.ID]; exists {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", character.ID).
			WithMeta("character_id", character.ID)
	}

	stored := character.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	stored.UpdatedAt = stored.CreatedAt
	r.characters[character.ID] = stored

	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	character, exists := r.characters[id]
	if !exists {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	return character.Clone(), nil
}

// ListByOwner retrieves all characters for a specific owner, ordered by ID
func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Character
	for _, char := range r.characters {
		if char.OwnerID == ownerID {
			result = append(result, char.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Update merges a partial change into an existing character
func (r *InMemoryRepository) Update(_ context.Context, id, actorID string, update *Update) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[id]
	if !exists {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	merged := existing.Clone()
	update.Apply(merged, actorID, r.now())
	r.characters[id] = merged

	return merged.Clone(), nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	delete(r.characters, id)
	return nil
}
