package repository

import (
	"context"
	"fmt"

	"coinbot/database"
	"github.com/jackc/pgx/v5"
)

// BalanceRepository implements balance data access. Mutation goes through
// ApplyDelta only, and only the ledger service calls it.
type BalanceRepository struct {
	q queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

// newBalanceRepositoryWithTx creates a new balance repository with a transaction
func newBalanceRepositoryWithTx(tx queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

// Get returns the current balance for a user. A user whose balance row is
// missing reads as zero; the registry-first-touch policy means that should
// not happen, but a missing row must not fail the operation.
func (r *BalanceRepository) Get(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.q.QueryRow(ctx, `
		SELECT balance FROM balances WHERE user_id = $1
	`, userID).Scan(&balance)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}

	return balance, nil
}

// GetForUpdate returns the current balance with a row lock held for the
// rest of the transaction. Gate checks (cooldown, restriction, sufficiency)
// read under this lock so two concurrent claims for the same user cannot
// both see an allowed state: the second caller blocks here until the first
// commits, then re-reads the state the first one wrote.
func (r *BalanceRepository) GetForUpdate(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.q.QueryRow(ctx, `
		SELECT balance FROM balances WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&balance)

	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("balance row for user %d not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock balance for user %d: %w", userID, err)
	}

	return balance, nil
}

// ApplyDelta applies a signed delta to the stored balance and returns the
// resulting value. The delta may take the balance negative; sufficiency is
// the caller's policy, not the store's.
func (r *BalanceRepository) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	var newBalance int64
	err := r.q.QueryRow(ctx, `
		UPDATE balances
		SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING balance
	`, delta, userID).Scan(&newBalance)

	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("balance row for user %d not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply delta for user %d: %w", userID, err)
	}

	return newBalance, nil
}
