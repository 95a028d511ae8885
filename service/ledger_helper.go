package service

import (
	"context"
	"fmt"

	"coinbot/events"
	"coinbot/models"
)

// ApplyAdjustment mutates the stored balance and appends the matching audit
// entry on the given unit of work. This is the single entry point for all
// balance changes in the system: the update and the audit insert commit or
// roll back together with whatever gate checks the caller performed on the
// same unit of work.
func ApplyAdjustment(ctx context.Context, uow UnitOfWork, userID int64, delta int64, action models.ActionTag, metadata map[string]any) (int64, error) {
	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return 0, fmt.Errorf("failed to ensure account: %w", err)
	}

	newBalance, err := uow.BalanceRepository().ApplyDelta(ctx, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	entry := &models.EconomyLog{
		UserID:   &userID,
		Action:   action,
		Amount:   &delta,
		Metadata: metadata,
	}
	if err := uow.EconomyLogRepository().Append(ctx, entry); err != nil {
		return 0, fmt.Errorf("failed to append audit entry: %w", err)
	}

	// Emitted only after the transaction commits
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:       userID,
		NewBalance:   newBalance,
		ChangeAmount: delta,
		Action:       action,
		LogID:        entry.ID,
	})

	return newBalance, nil
}
