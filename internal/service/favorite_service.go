package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"propertyhub/internal/domain"
	"propertyhub/internal/repository"
)

// ErrAlreadyFavorited is returned when the user has already favorited the
// property.
var ErrAlreadyFavorited = errors.New("property already in favorites")

// FavoriteService maintains the user-property favorite relation. Uniqueness
// of the (user, property) pair is enforced by the storage layer; the service
// only translates the constraint violation.
type FavoriteService interface {
	Add(ctx context.Context, userID, propertyID string) (*domain.Favorite, error)
	// Remove deletes by the favorite's own id, scoped to the caller.
	// Removing an absent id succeeds; callers cannot probe existence.
	Remove(ctx context.Context, userID, favoriteID string) error
	List(ctx context.Context, userID string) ([]domain.FavoriteEntry, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favorites: favorites}
}

// Add records a favorite. The referenced property is not checked for
// existence at write time; dangling favorites are filtered on the read path.
func (s *favoriteService) Add(ctx context.Context, userID, propertyID string) (*domain.Favorite, error) {
	if propertyID == "" {
		return nil, validationError("propertyId is required")
	}

	favorite := &domain.Favorite{
		ID:         uuid.NewString(),
		UserID:     userID,
		PropertyID: propertyID,
	}

	if err := s.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return favorite, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, favoriteID string) error {
	if favoriteID == "" {
		return validationError("favorite id is required")
	}
	return s.favorites.Delete(ctx, favoriteID, userID)
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]domain.FavoriteEntry, error) {
	return s.favorites.ListWithProperties(ctx, userID)
}
