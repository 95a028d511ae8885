package service

import (
	"context"
	"fmt"
	"time"

	"coinbot/models"
	log "github.com/sirupsen/logrus"
)

type economyService struct {
	uowFactory  UnitOfWorkFactory
	dailyReward int64
	dailyWindow time.Duration
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory, dailyReward int64, dailyWindow time.Duration) EconomyService {
	return &economyService{
		uowFactory:  uowFactory,
		dailyReward: dailyReward,
		dailyWindow: dailyWindow,
	}
}

// CanClaim answers whether the action may fire again. It only answers the
// question; a caller that intends to claim must re-check on the same unit
// of work as the adjustment, the way ClaimDaily does, or two concurrent
// claims can both see an allowed state.
func (s *economyService) CanClaim(ctx context.Context, userID int64, action models.ActionTag, window time.Duration) (bool, time.Duration, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return false, 0, fmt.Errorf("failed to ensure account: %w", err)
	}

	entry, err := uow.EconomyLogRepository().LatestByUserAction(ctx, userID, action)
	if err != nil {
		return false, 0, fmt.Errorf("failed to get latest claim: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	allowed, remaining := evaluateCooldown(entry, window, time.Now().UTC())
	return allowed, remaining, nil
}

// ClaimDaily runs the whole claim as one transaction under a per-user row
// lock: restriction gate, cooldown check against the latest daily audit
// entry, then the reward adjustment. A rejection leaves state untouched and
// appends nothing.
func (s *economyService) ClaimDaily(ctx context.Context, userID int64) (*models.DailyClaimResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	// Lock the user's balance row before the gate checks. A concurrent
	// claim for the same user blocks here until this transaction ends and
	// then sees the audit entry it wrote.
	balance, err := uow.BalanceRepository().GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}

	now := time.Now().UTC()

	ban, err := uow.GameBanRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restriction: %w", err)
	}
	if ban.ActiveAt(now) {
		return &models.DailyClaimResult{
			Rejection:  models.RejectionRestricted,
			BanReason:  ban.Reason,
			NewBalance: balance,
		}, nil
	}

	entry, err := uow.EconomyLogRepository().LatestByUserAction(ctx, userID, models.ActionDaily)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest claim: %w", err)
	}

	allowed, remaining := evaluateCooldown(entry, s.dailyWindow, now)
	if !allowed {
		return &models.DailyClaimResult{
			Rejection:  models.RejectionCooldown,
			Remaining:  remaining,
			NewBalance: balance,
		}, nil
	}

	newBalance, err := ApplyAdjustment(ctx, uow, userID, s.dailyReward, models.ActionDaily, map[string]any{
		"reward": s.dailyReward,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"reward":  s.dailyReward,
		"balance": newBalance,
	}).Info("Daily reward claimed")

	return &models.DailyClaimResult{
		Claimed:    true,
		Reward:     s.dailyReward,
		NewBalance: newBalance,
	}, nil
}
