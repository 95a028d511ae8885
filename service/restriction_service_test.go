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

func TestIsRestricted_NoBanRow(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewRestrictionService(m.factory)

	userID := int64(111111)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(nil, nil)

	restricted, reason, err := service.IsRestricted(ctx, userID)

	require.NoError(t, err)
	assert.False(t, restricted)
	assert.Nil(t, reason)
}

func TestIsRestricted_ActiveTimedBan(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewRestrictionService(m.factory)

	userID := int64(222222)
	banReason := "repeated overbetting"
	until := time.Now().UTC().Add(time.Hour)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(&models.GameBan{
		UserID:      userID,
		ActiveUntil: &until,
		Reason:      &banReason,
	}, nil)

	restricted, reason, err := service.IsRestricted(ctx, userID)

	require.NoError(t, err)
	assert.True(t, restricted)
	require.NotNil(t, reason)
	assert.Equal(t, banReason, *reason)
}

func TestIsRestricted_ExpiredBanKeepsReason(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewRestrictionService(m.factory)

	userID := int64(333333)
	banReason := "spam"
	until := time.Now().UTC().Add(-time.Hour)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(&models.GameBan{
		UserID:      userID,
		ActiveUntil: &until,
		Reason:      &banReason,
	}, nil)

	restricted, reason, err := service.IsRestricted(ctx, userID)

	require.NoError(t, err)
	assert.False(t, restricted)
	require.NotNil(t, reason)
	assert.Equal(t, banReason, *reason)
}

func TestIsRestricted_PermanentBan(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewRestrictionService(m.factory)

	userID := int64(444444)
	banReason := "tos violation"
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Get", ctx, userID).Return(&models.GameBan{
		UserID: userID,
		Reason: &banReason,
	}, nil)

	restricted, reason, err := service.IsRestricted(ctx, userID)

	require.NoError(t, err)
	assert.True(t, restricted)
	require.NotNil(t, reason)
}

func TestSetRestriction_UpsertsAndPublishes(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewRestrictionService(m.factory)

	userID := int64(555555)
	banReason := "raffle abuse"
	until := time.Now().UTC().Add(7 * 24 * time.Hour)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Upsert", ctx, mock.MatchedBy(func(ban *models.GameBan) bool {
		return ban.UserID == userID && ban.ActiveUntil.Equal(until) && *ban.Reason == banReason
	})).Return(nil)

	err := service.SetRestriction(ctx, userID, &until, &banReason)

	require.NoError(t, err)
	m.gameBanRepo.AssertExpectations(t)

	require.Len(t, m.publishedEvents(), 1)
	event := m.publishedEvents()[0].(events.GameBanSetEvent)
	assert.Equal(t, userID, event.UserID)
	assert.False(t, event.Lifted)
}

func TestSetRestriction_LiftIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewRestrictionService(m.factory)

	userID := int64(666666)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.gameBanRepo.On("Upsert", ctx, mock.MatchedBy(func(ban *models.GameBan) bool {
		return ban.UserID == userID && ban.ActiveUntil == nil && ban.Reason == nil
	})).Return(nil)

	require.NoError(t, service.SetRestriction(ctx, userID, nil, nil))
	require.NoError(t, service.SetRestriction(ctx, userID, nil, nil))

	require.Len(t, m.publishedEvents(), 2)
	for _, raw := range m.publishedEvents() {
		event := raw.(events.GameBanSetEvent)
		assert.True(t, event.Lifted)
	}
}
