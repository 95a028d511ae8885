package service

import (
	"context"
	"fmt"

	"coinbot/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// GetBalance ensures the account exists and returns its current balance.
// A brand-new account reads as zero.
func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return 0, fmt.Errorf("failed to ensure account: %w", err)
	}

	balance, err := uow.BalanceRepository().Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return balance, nil
}

// AdjustBalance applies delta to the user's balance and appends one audit
// entry, atomically. Always succeeds for any delta: sufficiency checks are
// the caller's policy and must happen before calling this.
func (s *ledgerService) AdjustBalance(ctx context.Context, userID int64, delta int64, action models.ActionTag, metadata map[string]any) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	newBalance, err := ApplyAdjustment(ctx, uow, userID, delta, action, metadata)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

// GetHistory returns the newest audit entries for a user, most recent first.
func (s *ledgerService) GetHistory(ctx context.Context, userID int64, limit int) ([]*models.EconomyLog, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.EconomyLogRepository().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, nil
}
