package repository

import (
	"context"

	"propertyhub/internal/domain"
)

// FavoriteRepository maintains the user-property favorite relation. The
// storage layer enforces uniqueness of (user_id, property_id); Create
// reports a violation as ErrDuplicate.
type FavoriteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, favorite *domain.Favorite) error
	// Delete removes a favorite by its own id, scoped to the owning user.
	// Deleting an absent id is not an error.
	Delete(ctx context.Context, id, userID string) error
	// ListWithProperties returns the user's favorites joined with their
	// properties. Favorites whose property no longer exists are omitted.
	ListWithProperties(ctx context.Context, userID string) ([]domain.FavoriteEntry, error)
}
