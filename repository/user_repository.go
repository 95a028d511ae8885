package repository

import (
	"context"
	"fmt"

	"coinbot/database"
	"coinbot/models"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements the account registry and user data access.
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// EnsureUser inserts the user row and its zero-balance row if absent.
// Idempotent: existing rows are left untouched. Every balance or restriction
// operation must call this (directly or transitively) before reading or
// writing that user's rows.
func (r *UserRepository) EnsureUser(ctx context.Context, userID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user %d: %w", userID, err)
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO balances (user_id, balance) VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure balance for user %d: %w", userID, err)
	}

	return nil
}

// GetByID retrieves a user by their ID, or nil if unknown.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT user_id, linked_profile_url, created_at
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.LinkedProfileURL,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

// SetProfileURL stores the external catalog profile URL for a user.
func (r *UserRepository) SetProfileURL(ctx context.Context, userID int64, profileURL *string) error {
	result, err := r.q.Exec(ctx, `
		UPDATE users SET linked_profile_url = $1 WHERE user_id = $2
	`, profileURL, userID)
	if err != nil {
		return fmt.Errorf("failed to set profile URL for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// ListAccounts returns users joined with their balances, newest first.
func (r *UserRepository) ListAccounts(ctx context.Context, limit int) ([]*models.UserAccount, error) {
	query := `
		SELECT u.user_id, u.linked_profile_url, COALESCE(b.balance, 0), u.created_at
		FROM users u
		LEFT JOIN balances b ON b.user_id = u.user_id
		ORDER BY u.created_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.UserAccount
	for rows.Next() {
		var account models.UserAccount
		err := rows.Scan(
			&account.UserID,
			&account.LinkedProfileURL,
			&account.Balance,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
