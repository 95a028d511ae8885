package repository

import (
	"context"
	"testing"

	"coinbot/events"
	"coinbot/models"
	"coinbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitMakesBothWritesVisible(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	require.NoError(t, uow.UserRepository().EnsureUser(ctx, 123456))
	_, err := uow.BalanceRepository().ApplyDelta(ctx, 123456, 100)
	require.NoError(t, err)
	require.NoError(t, uow.EconomyLogRepository().Append(ctx, testutil.CreateTestLog(123456, models.ActionDaily, 100)))

	require.NoError(t, uow.Commit())

	balance, err := NewBalanceRepository(testDB.DB).Get(ctx, 123456)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	total, err := NewEconomyLogRepository(testDB.DB).SumAmounts(ctx, 123456)
	require.NoError(t, err)
	assert.Equal(t, int64(100), total)
}

func TestUnitOfWork_RollbackDiscardsBothWrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	require.NoError(t, NewUserRepository(testDB.DB).EnsureUser(ctx, 123456))

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.BalanceRepository().ApplyDelta(ctx, 123456, 500)
	require.NoError(t, err)
	require.NoError(t, uow.EconomyLogRepository().Append(ctx, testutil.CreateTestLog(123456, models.ActionDaily, 500)))

	require.NoError(t, uow.Rollback())

	balance, err := NewBalanceRepository(testDB.DB).Get(ctx, 123456)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	entry, err := NewEconomyLogRepository(testDB.DB).LatestByUserAction(ctx, 123456, models.ActionDaily)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestUnitOfWork_RollbackAfterCommitIsNoOp(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().EnsureUser(ctx, 123456))
	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback())

	user, err := NewUserRepository(testDB.DB).GetByID(ctx, 123456)
	require.NoError(t, err)
	assert.NotNil(t, user)
}
