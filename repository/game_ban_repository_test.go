package repository

import (
	"context"
	"testing"
	"time"

	"coinbot/models"
	"coinbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameBanRepository_Get(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewGameBanRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no row returns nil", func(t *testing.T) {
		require.NoError(t, users.EnsureUser(ctx, 123456))

		ban, err := repo.Get(ctx, 123456)
		require.NoError(t, err)
		assert.Nil(t, ban)
	})
}

func TestGameBanRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewGameBanRepository(testDB.DB)
	ctx := context.Background()

	t.Run("insert then overwrite", func(t *testing.T) {
		require.NoError(t, users.EnsureUser(ctx, 123456))

		first := testutil.CreateTestBan(123456, 24*time.Hour, "first strike")
		require.NoError(t, repo.Upsert(ctx, first))
		assert.False(t, first.UpdatedAt.IsZero())

		second := testutil.CreateTestBan(123456, 72*time.Hour, "second strike")
		require.NoError(t, repo.Upsert(ctx, second))

		stored, err := repo.Get(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.NotNil(t, stored.Reason)
		assert.Equal(t, "second strike", *stored.Reason)
		require.NotNil(t, stored.ActiveUntil)
		assert.WithinDuration(t, *second.ActiveUntil, *stored.ActiveUntil, time.Second)
	})

	t.Run("permanent ban stores a nil deadline", func(t *testing.T) {
		require.NoError(t, users.EnsureUser(ctx, 789012))

		reason := "permanent"
		require.NoError(t, repo.Upsert(ctx, &models.GameBan{
			UserID: 789012,
			Reason: &reason,
		}))

		stored, err := repo.Get(ctx, 789012)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.ActiveUntil)
		require.NotNil(t, stored.Reason)
		assert.True(t, stored.ActiveAt(time.Now().UTC()))
	})

	t.Run("lift clears both fields but keeps the row", func(t *testing.T) {
		require.NoError(t, users.EnsureUser(ctx, 333333))

		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestBan(333333, time.Hour, "short ban")))
		require.NoError(t, repo.Upsert(ctx, &models.GameBan{UserID: 333333}))

		stored, err := repo.Get(ctx, 333333)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.ActiveUntil)
		assert.Nil(t, stored.Reason)
		assert.False(t, stored.ActiveAt(time.Now().UTC()))
	})
}
