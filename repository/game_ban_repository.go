package repository

import (
	"context"
	"fmt"

	"coinbot/database"
	"coinbot/models"
	"github.com/jackc/pgx/v5"
)

// GameBanRepository implements game ban data access.
type GameBanRepository struct {
	q queryable
}

// NewGameBanRepository creates a new game ban repository
func NewGameBanRepository(db *database.DB) *GameBanRepository {
	return &GameBanRepository{q: db.Pool}
}

// newGameBanRepositoryWithTx creates a new game ban repository with a transaction
func newGameBanRepositoryWithTx(tx queryable) *GameBanRepository {
	return &GameBanRepository{q: tx}
}

// Get retrieves the ban row for a user, or nil if none was ever set.
func (r *GameBanRepository) Get(ctx context.Context, userID int64) (*models.GameBan, error) {
	query := `
		SELECT user_id, active_until, reason, updated_at
		FROM game_bans
		WHERE user_id = $1
	`

	var ban models.GameBan
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&ban.UserID,
		&ban.ActiveUntil,
		&ban.Reason,
		&ban.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game ban for user %d: %w", userID, err)
	}

	return &ban, nil
}

// Upsert writes the single ban row for a user, overwriting both fields.
// Lifting a ban is an upsert with both fields nil; the row is kept.
func (r *GameBanRepository) Upsert(ctx context.Context, ban *models.GameBan) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO game_bans (user_id, active_until, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET active_until = excluded.active_until,
		    reason = excluded.reason,
		    updated_at = NOW()
		RETURNING updated_at
	`, ban.UserID, ban.ActiveUntil, ban.Reason).Scan(&ban.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game ban for user %d: %w", ban.UserID, err)
	}

	return nil
}
