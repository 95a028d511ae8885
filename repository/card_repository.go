package repository

import (
	"context"
	"fmt"

	"coinbot/database"
	"coinbot/models"
)

// CardRepository implements card data access.
type CardRepository struct {
	q queryable
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{q: db.Pool}
}

// newCardRepositoryWithTx creates a new card repository with a transaction
func newCardRepositoryWithTx(tx queryable) *CardRepository {
	return &CardRepository{q: tx}
}

// Create inserts a new card for its owner.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (owner_user_id, source, external_id, name, verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		card.OwnerUserID,
		card.Source,
		card.ExternalID,
		card.Name,
		card.Verified,
	).Scan(&card.ID, &card.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create card for user %d: %w", card.OwnerUserID, err)
	}

	return nil
}

// GetByOwner returns all cards owned by a user.
func (r *CardRepository) GetByOwner(ctx context.Context, ownerUserID int64) ([]*models.Card, error) {
	query := `
		SELECT id, owner_user_id, source, external_id, name, verified, created_at
		FROM cards
		WHERE owner_user_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for user %d: %w", ownerUserID, err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID,
			&card.OwnerUserID,
			&card.Source,
			&card.ExternalID,
			&card.Name,
			&card.Verified,
			&card.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}
