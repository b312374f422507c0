package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"propertyhub/internal/domain"
	"propertyhub/internal/repository"
)

// ErrNotPropertyOwner is returned when a caller tries to modify a listing
// they do not own.
var ErrNotPropertyOwner = errors.New("property belongs to another user")

// CreatePropertyInput carries the listing fields supplied by the owner.
type CreatePropertyInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Type        string
	Category    string
	Bedrooms    int
	Bathrooms   int
	Size        float64
	Images      []string
	Features    []string
}

// PropertyService coordinates listing operations backed by the repository.
type PropertyService interface {
	Create(ctx context.Context, ownerID string, in CreatePropertyInput) (*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
	AttachImage(ctx context.Context, id, ownerID, imageKey string) error
}

type propertyService struct {
	properties repository.PropertyRepository
}

func NewPropertyService(properties repository.PropertyRepository) PropertyService {
	return &propertyService{properties: properties}
}

func (s *propertyService) Create(ctx context.Context, ownerID string, in CreatePropertyInput) (*domain.Property, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	if in.Price < 0 {
		return nil, validationError("price must not be negative")
	}

	listingType := domain.ListingType(in.Type)
	if !listingType.Valid() {
		return nil, validationError("type must be one of sale, rent")
	}
	category := domain.Category(in.Category)
	if !category.Valid() {
		return nil, validationError("category must be one of residential, commercial")
	}

	property := &domain.Property{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Type:        listingType,
		Category:    category,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Size:        in.Size,
		Images:      in.Images,
		Features:    in.Features,
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.properties.Get(ctx, id)
}

func (s *propertyService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

func (s *propertyService) AttachImage(ctx context.Context, id, ownerID, imageKey string) error {
	property, err := s.properties.Get(ctx, id)
	if err != nil {
		return err
	}
	if property.UserID != ownerID {
		return ErrNotPropertyOwner
	}
	return s.properties.AppendImage(ctx, id, imageKey)
}
