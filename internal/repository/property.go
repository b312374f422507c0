package repository

import (
	"context"

	"propertyhub/internal/domain"
)

// PropertyRepository exposes persistence operations for Property listings.
type PropertyRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, property *domain.Property) error
	Get(ctx context.Context, id string) (*domain.Property, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Property, error)
	AppendImage(ctx context.Context, id, imageKey string) error
}
