package service

import (
	"context"
	"fmt"
	"time"

	"coinbot/events"
	"coinbot/models"
	log "github.com/sirupsen/logrus"
)

type restrictionService struct {
	uowFactory UnitOfWorkFactory
}

// NewRestrictionService creates a new restriction service
func NewRestrictionService(uowFactory UnitOfWorkFactory) RestrictionService {
	return &restrictionService{
		uowFactory: uowFactory,
	}
}

// IsRestricted evaluates the ban at the moment of the call; an expired ban
// reads as inactive without any cleanup pass. The stored reason is returned
// either way.
func (s *restrictionService) IsRestricted(ctx context.Context, userID int64) (bool, *string, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return false, nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	ban, err := uow.GameBanRepository().Get(ctx, userID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to get restriction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if ban == nil {
		return false, nil, nil
	}
	return ban.ActiveAt(time.Now().UTC()), ban.Reason, nil
}

// SetRestriction upserts the single ban row, overwriting both fields. Lift
// by passing nil for both; lifting is idempotent regardless of prior state.
func (s *restrictionService) SetRestriction(ctx context.Context, userID int64, activeUntil *time.Time, reason *string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to ensure account: %w", err)
	}

	ban := &models.GameBan{
		UserID:      userID,
		ActiveUntil: activeUntil,
		Reason:      reason,
	}
	if err := uow.GameBanRepository().Upsert(ctx, ban); err != nil {
		return fmt.Errorf("failed to upsert restriction: %w", err)
	}

	uow.EventBus().Publish(events.GameBanSetEvent{
		UserID:      userID,
		ActiveUntil: activeUntil,
		Reason:      reason,
		Lifted:      activeUntil == nil && reason == nil,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":      userID,
		"activeUntil": activeUntil,
	}).Info("Game restriction updated")

	return nil
}
