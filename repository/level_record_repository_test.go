package repository

import (
	"context"
	"testing"

	"levelbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRecordRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRecordRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates default record on first touch", func(t *testing.T) {
		record, err := repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)
		require.NotNil(t, record)

		assert.Equal(t, int64(1), record.GuildID)
		assert.Equal(t, int64(100), record.UserID)
		assert.Equal(t, int64(1), record.Level)
		assert.Equal(t, int64(0), record.XP)
		assert.Equal(t, int64(0), record.TotalXP)
		assert.False(t, record.CreatedAt.IsZero())
	})

	t.Run("returns existing record on second touch", func(t *testing.T) {
		record, err := repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)

		record.Level = 3
		record.XP = 50
		record.TotalXP = 500
		require.NoError(t, repo.Update(ctx, record))

		again, err := repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(3), again.Level)
		assert.Equal(t, int64(50), again.XP)
		assert.Equal(t, int64(500), again.TotalXP)
	})

	t.Run("records are scoped per guild", func(t *testing.T) {
		record, err := repo.GetOrCreate(ctx, 2, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.Level)
		assert.Equal(t, int64(0), record.TotalXP)
	})
}

func TestLevelRecordRepository_GetByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRecordRepository(testDB.DB)
	ctx := context.Background()

	t.Run("nil for unknown user", func(t *testing.T) {
		record, err := repo.GetByUser(ctx, 1, 999)
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("finds created record", func(t *testing.T) {
		created, err := repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)

		record, err := repo.GetByUser(ctx, 1, 100)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, created.UserID, record.UserID)
	})
}

func TestLevelRecordRepository_Update(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRecordRepository(testDB.DB)
	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		record, err := repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)

		record.Level = 5
		record.XP = 120
		record.TotalXP = 2370
		require.NoError(t, repo.Update(ctx, record))

		got, err := repo.GetByUser(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Level)
		assert.Equal(t, int64(120), got.XP)
		assert.Equal(t, int64(2370), got.TotalXP)
	})

	t.Run("missing record errors", func(t *testing.T) {
		record := testutil.CreateTestLevelRecordWithProgress(1, 999, 2, 10, 160)
		err := repo.Update(ctx, record)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestLevelRecordRepository_GetLeaderboard(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRecordRepository(testDB.DB)
	ctx := context.Background()

	seed := []struct {
		userID  int64
		level   int64
		totalXP int64
	}{
		{100, 3, 900},
		{200, 5, 2000},
		{300, 2, 400},
		{400, 3, 900}, // Same total as user 100
	}
	for _, s := range seed {
		record, err := repo.GetOrCreate(ctx, 1, s.userID)
		require.NoError(t, err)
		record.Level = s.level
		record.TotalXP = s.totalXP
		require.NoError(t, repo.Update(ctx, record))
	}

	// A record in another guild must never leak in
	other, err := repo.GetOrCreate(ctx, 2, 500)
	require.NoError(t, err)
	other.TotalXP = 99999
	require.NoError(t, repo.Update(ctx, other))

	t.Run("orders by total xp descending with stable ties", func(t *testing.T) {
		entries, err := repo.GetLeaderboard(ctx, 1, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 4)

		assert.Equal(t, int64(200), entries[0].UserID)
		// Tied users come out in ascending user ID order
		assert.Equal(t, int64(100), entries[1].UserID)
		assert.Equal(t, int64(400), entries[2].UserID)
		assert.Equal(t, int64(300), entries[3].UserID)

		for i, entry := range entries {
			assert.Equal(t, i+1, entry.Rank)
		}
	})

	t.Run("pagination offsets ranks", func(t *testing.T) {
		entries, err := repo.GetLeaderboard(ctx, 1, 2, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, 3, entries[0].Rank)
		assert.Equal(t, int64(400), entries[0].UserID)
		assert.Equal(t, 4, entries[1].Rank)
	})

	t.Run("empty guild", func(t *testing.T) {
		entries, err := repo.GetLeaderboard(ctx, 42, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestLevelRecordRepository_GetRank(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRecordRepository(testDB.DB)
	ctx := context.Background()

	for _, s := range []struct {
		userID  int64
		totalXP int64
	}{{100, 500}, {200, 1500}, {300, 1000}} {
		record, err := repo.GetOrCreate(ctx, 1, s.userID)
		require.NoError(t, err)
		record.TotalXP = s.totalXP
		require.NoError(t, repo.Update(ctx, record))
	}

	t.Run("ranks follow total xp", func(t *testing.T) {
		rank, err := repo.GetRank(ctx, 1, 200)
		require.NoError(t, err)
		assert.Equal(t, 1, rank)

		rank, err = repo.GetRank(ctx, 1, 300)
		require.NoError(t, err)
		assert.Equal(t, 2, rank)

		rank, err = repo.GetRank(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, 3, rank)
	})

	t.Run("zero for unknown user", func(t *testing.T) {
		rank, err := repo.GetRank(ctx, 1, 999)
		require.NoError(t, err)
		assert.Equal(t, 0, rank)
	})
}

func TestLevelRecordRepository_Count(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLevelRecordRepository(testDB.DB)
	ctx := context.Background()

	count, err := repo.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for _, userID := range []int64{100, 200, 300} {
		_, err := repo.GetOrCreate(ctx, 1, userID)
		require.NoError(t, err)
	}

	count, err = repo.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
