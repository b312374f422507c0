package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"propertyhub/internal/repository"
	"propertyhub/internal/repository/sqlite"
)

type testRepos struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
	favorites  repository.FavoriteRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := testRepos{
		users:      sqlite.NewUserRepository(db),
		properties: sqlite.NewPropertyRepository(db),
		favorites:  sqlite.NewFavoriteRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.properties.Init(ctx))
	require.NoError(t, repos.favorites.Init(ctx))

	return repos
}
