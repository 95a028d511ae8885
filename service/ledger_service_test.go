package service

import (
	"context"
	"testing"

	"coinbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetBalance_EnsuresAccountFirst(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewLedgerService(m.factory)

	userID := int64(111111)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.balanceRepo.On("Get", ctx, userID).Return(int64(0), nil)

	balance, err := service.GetBalance(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	m.userRepo.AssertExpectations(t)
	m.balanceRepo.AssertExpectations(t)
}

func TestAdjustBalance_AppendsMatchingAuditEntry(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewLedgerService(m.factory)

	userID := int64(222222)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.balanceRepo.On("ApplyDelta", ctx, userID, int64(-250)).Return(int64(750), nil)
	m.economyLogRepo.On("Append", ctx, mock.MatchedBy(func(entry *models.EconomyLog) bool {
		return *entry.UserID == userID &&
			entry.Action == models.ActionAdminAdjust &&
			*entry.Amount == -250 &&
			entry.Metadata["moderator"] == "admin#1"
	})).Return(nil)

	newBalance, err := service.AdjustBalance(ctx, userID, -250, models.ActionAdminAdjust, map[string]any{
		"moderator": "admin#1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(750), newBalance)
	m.economyLogRepo.AssertExpectations(t)
}

func TestAdjustBalance_AppendFailureSurfacesError(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewLedgerService(m.factory)

	userID := int64(333333)
	m.userRepo.On("EnsureUser", ctx, userID).Return(nil)
	m.balanceRepo.On("ApplyDelta", ctx, userID, int64(50)).Return(int64(50), nil)
	m.economyLogRepo.On("Append", ctx, mock.Anything).Return(assert.AnError)

	_, err := service.AdjustBalance(ctx, userID, 50, models.ActionAdminAdjust, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestGetHistory_ReturnsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	service := NewLedgerService(m.factory)

	userID := int64(444444)
	amount := int64(100)
	entries := []*models.EconomyLog{
		{ID: 2, UserID: &userID, Action: models.ActionCoinflip, Amount: &amount},
		{ID: 1, UserID: &userID, Action: models.ActionDaily, Amount: &amount},
	}
	m.economyLogRepo.On("ListByUser", ctx, userID, 50).Return(entries, nil)

	got, err := service.GetHistory(ctx, userID, 50)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}
