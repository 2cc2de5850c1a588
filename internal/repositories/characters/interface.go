package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, character *Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*Character, error)

	// ListByOwner retrieves all characters for a specific owner
	ListByOwner(ctx context.Context, ownerID string) ([]*Character, error)

	// Update merges a partial change into an existing character and returns the result.
	// actorID is recorded as UpdatedBy.
	Update(ctx context.Context, id, actorID string, update *Update) (*Character, error)

	// Delete removes a character
	Delete(ctx context.Context, id string) error
}
