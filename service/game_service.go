package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"coinbot/models"
	log "github.com/sirupsen/logrus"
)

type gameService struct {
	uowFactory UnitOfWorkFactory
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
	}
}

// Coinflip plays an even-odds wager. The composition every game follows:
// check the restriction gate, validate the stake against the balance, then
// adjust with audit, all on one unit of work. The ledger itself never
// rejects an overdraft; the sufficiency check here is what keeps balances
// non-negative.
func (s *gameService) Coinflip(ctx context.Context, userID int64, stake int64) (*models.CoinflipResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	// Lock the balance row before the gate and sufficiency checks so two
	// concurrent flips cannot both pass with the same funds.
	balance, err := uow.BalanceRepository().GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}

	ban, err := uow.GameBanRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restriction: %w", err)
	}

	if ban.ActiveAt(time.Now().UTC()) {
		return &models.CoinflipResult{
			Rejection:  models.RejectionRestricted,
			BanReason:  ban.Reason,
			Stake:      stake,
			NewBalance: balance,
		}, nil
	}

	if stake <= 0 {
		return &models.CoinflipResult{
			Rejection:  models.RejectionInvalidStake,
			Stake:      stake,
			NewBalance: balance,
		}, nil
	}

	if balance < stake {
		return &models.CoinflipResult{
			Rejection:  models.RejectionInsufficientBalance,
			Stake:      stake,
			NewBalance: balance,
		}, nil
	}

	won := rand.Intn(2) == 0
	delta := stake
	if !won {
		delta = -stake
	}

	newBalance, err := ApplyAdjustment(ctx, uow, userID, delta, models.ActionCoinflip, map[string]any{
		"stake": stake,
		"won":   won,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"stake":   stake,
		"won":     won,
		"balance": newBalance,
	}).Info("Coinflip played")

	return &models.CoinflipResult{
		Played:     true,
		Won:        won,
		Stake:      stake,
		NewBalance: newBalance,
	}, nil
}
