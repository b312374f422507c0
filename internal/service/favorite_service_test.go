package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAddListRemove(t *testing.T) {
	repos := newTestRepos(t)
	favorites := NewFavoriteService(repos.favorites)
	properties := NewPropertyService(repos.properties)
	ctx := context.Background()

	property, err := properties.Create(ctx, "owner", CreatePropertyInput{
		Title:    "Sunny flat",
		Price:    1200,
		Type:     "rent",
		Category: "residential",
	})
	require.NoError(t, err)

	favorite, err := favorites.Add(ctx, "u-1", property.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, favorite.ID)

	_, err = favorites.Add(ctx, "u-1", property.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	entries, err := favorites.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, favorite.ID, entries[0].FavoriteID)
	assert.Equal(t, property.ID, entries[0].Property.ID)

	require.NoError(t, favorites.Remove(ctx, "u-1", favorite.ID))
	// second remove of the same id is still a success
	require.NoError(t, favorites.Remove(ctx, "u-1", favorite.ID))

	entries, err = favorites.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFavoriteAddDoesNotCheckProperty(t *testing.T) {
	repos := newTestRepos(t)
	favorites := NewFavoriteService(repos.favorites)
	ctx := context.Background()

	// the referenced property need not exist at write time
	favorite, err := favorites.Add(ctx, "u-1", "no-such-property")
	require.NoError(t, err)
	assert.NotEmpty(t, favorite.ID)

	// and the dangling entry never surfaces on reads
	entries, err := favorites.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFavoriteAddValidation(t *testing.T) {
	repos := newTestRepos(t)
	favorites := NewFavoriteService(repos.favorites)

	_, err := favorites.Add(context.Background(), "u-1", "")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
