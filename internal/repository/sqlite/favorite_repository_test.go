package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/domain"
	"propertyhub/internal/repository"
)

func TestFavoriteRepositoryUniquePair(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteRepository(db)
	ctx := context.Background()

	require.NoError(t, favorites.Create(ctx, &domain.Favorite{ID: "f-1", UserID: "u-1", PropertyID: "p-1"}))

	err := favorites.Create(ctx, &domain.Favorite{ID: "f-2", UserID: "u-1", PropertyID: "p-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// same property for another user is fine
	require.NoError(t, favorites.Create(ctx, &domain.Favorite{ID: "f-3", UserID: "u-2", PropertyID: "p-1"}))
}

func TestFavoriteRepositoryDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteRepository(db)
	ctx := context.Background()

	require.NoError(t, favorites.Create(ctx, &domain.Favorite{ID: "f-1", UserID: "u-1", PropertyID: "p-1"}))

	require.NoError(t, favorites.Delete(ctx, "f-1", "u-1"))
	// deleting an already-removed id is still a success
	require.NoError(t, favorites.Delete(ctx, "f-1", "u-1"))
	// unknown ids are a no-op too
	require.NoError(t, favorites.Delete(ctx, "never-existed", "u-1"))
}

func TestFavoriteRepositoryDeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteRepository(db)
	ctx := context.Background()

	require.NoError(t, favorites.Create(ctx, &domain.Favorite{ID: "f-1", UserID: "u-1", PropertyID: "p-1"}))

	// another user's delete is a silent no-op, the row survives
	require.NoError(t, favorites.Delete(ctx, "f-1", "u-2"))

	err := favorites.Create(ctx, &domain.Favorite{ID: "f-2", UserID: "u-1", PropertyID: "p-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestFavoriteRepositoryListFiltersDangling(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteRepository(db)
	properties := NewPropertyRepository(db)
	ctx := context.Background()

	require.NoError(t, properties.Create(ctx, testProperty("p-1", "owner")))

	require.NoError(t, favorites.Create(ctx, &domain.Favorite{ID: "f-1", UserID: "u-1", PropertyID: "p-1"}))
	// dangling favorite: the property was never created
	require.NoError(t, favorites.Create(ctx, &domain.Favorite{ID: "f-2", UserID: "u-1", PropertyID: "gone"}))

	entries, err := favorites.ListWithProperties(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "f-1", entries[0].FavoriteID)
	assert.Equal(t, "p-1", entries[0].Property.ID)
	assert.Equal(t, "Sunny flat", entries[0].Property.Title)
}
