package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"coinbot/database"
	"coinbot/models"
	"github.com/jackc/pgx/v5"
)

// EconomyLogRepository implements the append-only audit trail. Entries are
// never updated or deleted.
type EconomyLogRepository struct {
	q queryable
}

// NewEconomyLogRepository creates a new economy log repository
func NewEconomyLogRepository(db *database.DB) *EconomyLogRepository {
	return &EconomyLogRepository{q: db.Pool}
}

// newEconomyLogRepositoryWithTx creates a new economy log repository with a transaction
func newEconomyLogRepositoryWithTx(tx queryable) *EconomyLogRepository {
	return &EconomyLogRepository{q: tx}
}

// Append inserts a new audit entry and fills in its ID and creation time.
func (r *EconomyLogRepository) Append(ctx context.Context, entry *models.EconomyLog) error {
	metadataJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal log metadata: %w", err)
	}

	query := `
		INSERT INTO economy_logs (user_id, action, amount, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.Amount,
		metadataJSON,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append economy log: %w", err)
	}

	return nil
}

// LatestByUserAction returns the most recent entry for (user, action), or
// nil if the user never performed the action. Ordering is by insertion
// sequence, not wall clock, so clock skew cannot reorder claims.
func (r *EconomyLogRepository) LatestByUserAction(ctx context.Context, userID int64, action models.ActionTag) (*models.EconomyLog, error) {
	query := `
		SELECT id, user_id, action, amount, metadata, created_at
		FROM economy_logs
		WHERE user_id = $1 AND action = $2
		ORDER BY id DESC
		LIMIT 1
	`

	entry, err := scanLogRow(r.q.QueryRow(ctx, query, userID, action))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest %q log for user %d: %w", action, userID, err)
	}

	return entry, nil
}

// SumAmounts returns the sum of all non-null amounts for a user. By the
// ledger invariant this equals the user's stored balance.
func (r *EconomyLogRepository) SumAmounts(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM economy_logs
		WHERE user_id = $1 AND amount IS NOT NULL
	`, userID).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("failed to sum log amounts for user %d: %w", userID, err)
	}

	return total, nil
}

// ListByUser returns the newest entries for a user, most recent first.
func (r *EconomyLogRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.EconomyLog, error) {
	query := `
		SELECT id, user_id, action, amount, metadata, created_at
		FROM economy_logs
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list economy logs for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.EconomyLog
	for rows.Next() {
		entry, err := scanLogRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan economy log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate economy logs: %w", err)
	}

	return entries, nil
}

func scanLogRow(row pgx.Row) (*models.EconomyLog, error) {
	var entry models.EconomyLog
	var metadataJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Action,
		&entry.Amount,
		&metadataJSON,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log metadata: %w", err)
		}
	}

	return &entry, nil
}
