package monsters

//go:generate mockgen -destination=mock/mock.go -package=mockmonsters -source=interface.go

import (
	"context"
)

// Repository provides monster templates
type Repository interface {
	// Get retrieves a template by ID; NotFound when unknown
	Get(ctx context.Context, id string) (*Monster, error)
}
