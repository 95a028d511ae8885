package service

import (
	"context"
	"testing"
	"time"

	"coinbot/events"
	"coinbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceMocks struct {
	userRepo       *MockUserRepository
	balanceRepo    *MockBalanceRepository
	gameBanRepo    *MockGameBanRepository
	economyLogRepo *MockEconomyLogRepository
	cardRepo       *MockCardRepository
	uow            *MockUnitOfWork
	factory        *MockUnitOfWorkFactory
}

func newServiceMocks() *serviceMocks {
	m := &serviceMocks{
		userRepo:       new(MockUserRepository),
		balanceRepo:    new(MockBalanceRepository),
		gameBanRepo:    new(MockGameBanRepository),
		economyLogRepo: new(MockEconomyLogRepository),
		cardRepo:       new(MockCardRepository),
		uow:            new(MockUnitOfWork),
		factory:        new(MockUnitOfWorkFactory),
	}
	m.uow.SetRepositories(m.userRepo, m.balanceRepo, m.gameBanRepo, m.economyLogRepo, m.cardRepo)
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Commit").Return(nil).Maybe()
	m.uow.On("Rollback").Return(nil).Maybe()
	return m
}

func (m *serviceMocks) publishedEvents() []events.Event {
	return m.uow.eventPublisher.Published
}

func TestClaimDaily_NewUserClaims(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(111111)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.balanceRepo.On("GetForUpdate", ctx, userID).Return(int64(0), nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(nil, nil)
	m.economyLogRepo.On("LatestByUserAction", ctx, userID, models.ActionDaily).Return(nil, nil)
	m.balanceRepo.On("ApplyDelta", ctx, userID, int64(100)).Return(int64(100), nil)
	m.economyLogRepo.On("Append", ctx, mock.MatchedBy(func(entry *models.EconomyLog) bool {
		return *entry.UserID == userID && entry.Action == models.ActionDaily && *entry.Amount == 100
	})).Return(nil)

	result, err := service.ClaimDaily(ctx, userID)

	require.NoError(t, err)
	assert.True(t, result.Claimed)
	assert.Equal(t, models.RejectionNone, result.Rejection)
	assert.Equal(t, int64(100), result.Reward)
	assert.Equal(t, int64(100), result.NewBalance)

	require.Len(t, m.publishedEvents(), 1)
	event := m.publishedEvents()[0].(events.BalanceChangeEvent)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, int64(100), event.ChangeAmount)
	assert.Equal(t, models.ActionDaily, event.Action)

	m.economyLogRepo.AssertExpectations(t)
	m.balanceRepo.AssertExpectations(t)
}

func TestClaimDaily_InsideWindowRejected(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(222222)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(nil, nil)
	m.economyLogRepo.On("LatestByUserAction", ctx, userID, models.ActionDaily).Return(&models.EconomyLog{
		Action:    models.ActionDaily,
		CreatedAt: time.Now().UTC().Add(-1 * time.Hour),
	}, nil)
	m.balanceRepo.On("GetForUpdate", ctx, userID).Return(int64(100), nil)

	result, err := service.ClaimDaily(ctx, userID)

	require.NoError(t, err)
	assert.False(t, result.Claimed)
	assert.Equal(t, models.RejectionCooldown, result.Rejection)
	assert.Equal(t, int64(100), result.NewBalance)
	assert.InDelta(t, (23 * time.Hour).Seconds(), result.Remaining.Seconds(), 60)

	m.balanceRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
	m.economyLogRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	assert.Empty(t, m.publishedEvents())
}

func TestClaimDaily_WindowElapsedAllowsAgain(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(333333)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.balanceRepo.On("GetForUpdate", ctx, userID).Return(int64(100), nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(nil, nil)
	m.economyLogRepo.On("LatestByUserAction", ctx, userID, models.ActionDaily).Return(&models.EconomyLog{
		Action:    models.ActionDaily,
		CreatedAt: time.Now().UTC().Add(-25 * time.Hour),
	}, nil)
	m.balanceRepo.On("ApplyDelta", ctx, userID, int64(100)).Return(int64(200), nil)
	m.economyLogRepo.On("Append", ctx, mock.Anything).Return(nil)

	result, err := service.ClaimDaily(ctx, userID)

	require.NoError(t, err)
	assert.True(t, result.Claimed)
	assert.Equal(t, int64(200), result.NewBalance)
}

func TestClaimDaily_RestrictedUserRejected(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(444444)
	reason := "alt account farming"
	until := time.Now().UTC().Add(48 * time.Hour)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(&models.GameBan{
		UserID:      userID,
		ActiveUntil: &until,
		Reason:      &reason,
	}, nil)
	m.balanceRepo.On("GetForUpdate", ctx, userID).Return(int64(500), nil)

	result, err := service.ClaimDaily(ctx, userID)

	require.NoError(t, err)
	assert.False(t, result.Claimed)
	assert.Equal(t, models.RejectionRestricted, result.Rejection)
	require.NotNil(t, result.BanReason)
	assert.Equal(t, reason, *result.BanReason)
	assert.Equal(t, int64(500), result.NewBalance)

	m.economyLogRepo.AssertNotCalled(t, "LatestByUserAction", mock.Anything, mock.Anything, mock.Anything)
	m.balanceRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimDaily_ExpiredBanDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(555555)
	reason := "cooled off"
	until := time.Now().UTC().Add(-time.Minute)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.balanceRepo.On("GetForUpdate", ctx, userID).Return(int64(0), nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(&models.GameBan{
		UserID:      userID,
		ActiveUntil: &until,
		Reason:      &reason,
	}, nil)
	m.economyLogRepo.On("LatestByUserAction", ctx, userID, models.ActionDaily).Return(nil, nil)
	m.balanceRepo.On("ApplyDelta", ctx, userID, int64(100)).Return(int64(100), nil)
	m.economyLogRepo.On("Append", ctx, mock.Anything).Return(nil)

	result, err := service.ClaimDaily(ctx, userID)

	require.NoError(t, err)
	assert.True(t, result.Claimed)
}

func TestCanClaim_ReportsRemaining(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(666666)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.economyLogRepo.On("LatestByUserAction", ctx, userID, models.ActionDaily).Return(&models.EconomyLog{
		Action:    models.ActionDaily,
		CreatedAt: time.Now().UTC().Add(-20 * time.Hour),
	}, nil)

	allowed, remaining, err := service.CanClaim(ctx, userID, models.ActionDaily, 24*time.Hour)

	require.NoError(t, err)
	assert.False(t, allowed)
	assert.InDelta(t, (4 * time.Hour).Seconds(), remaining.Seconds(), 60)
}

func TestCanClaim_NeverClaimedAllows(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewEconomyService(m.factory, 100, 24*time.Hour)

	userID := int64(777777)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.economyLogRepo.On("LatestByUserAction", ctx, userID, models.ActionDaily).Return(nil, nil)

	allowed, remaining, err := service.CanClaim(ctx, userID, models.ActionDaily, 24*time.Hour)

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, remaining)
}
