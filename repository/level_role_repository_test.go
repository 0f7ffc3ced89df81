package repository

import (
	"context"
	"testing"

	"levelbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRoleRepository_SetAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRoleRepository(testDB.DB)
	ctx := context.Background()

	t.Run("set and retrieve", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, 1, 5, 501))

		role, err := repo.GetByLevel(ctx, 1, 5)
		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, int64(501), role.RoleID)
	})

	t.Run("set overwrites existing role", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, 1, 5, 502))

		role, err := repo.GetByLevel(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(502), role.RoleID)
	})

	t.Run("nil for unconfigured level", func(t *testing.T) {
		role, err := repo.GetByLevel(ctx, 1, 99)
		require.NoError(t, err)
		assert.Nil(t, role)
	})
}

func TestLevelRoleRepository_Remove(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRoleRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, 1, 10, 510))

	removed, err := repo.Remove(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, removed)

	role, err := repo.GetByLevel(ctx, 1, 10)
	require.NoError(t, err)
	assert.Nil(t, role)

	// Removing again reports nothing deleted
	removed, err = repo.Remove(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLevelRoleRepository_GetByGuild(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRoleRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty guild", func(t *testing.T) {
		roles, err := repo.GetByGuild(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("ordered by level", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, 1, 20, 520))
		require.NoError(t, repo.Set(ctx, 1, 5, 505))
		require.NoError(t, repo.Set(ctx, 1, 10, 510))

		// Another guild's roles stay invisible
		require.NoError(t, repo.Set(ctx, 2, 5, 905))

		roles, err := repo.GetByGuild(ctx, 1)
		require.NoError(t, err)
		require.Len(t, roles, 3)

		assert.Equal(t, int64(5), roles[0].Level)
		assert.Equal(t, int64(10), roles[1].Level)
		assert.Equal(t, int64(20), roles[2].Level)
	})
}
