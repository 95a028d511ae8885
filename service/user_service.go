package service

import (
	"context"
	"fmt"

	"coinbot/models"
	"coinbot/provider"
	log "github.com/sirupsen/logrus"
)

type userService struct {
	uowFactory UnitOfWorkFactory
	cards      provider.CardProvider
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, cards provider.CardProvider) UserService {
	return &userService{
		uowFactory: uowFactory,
		cards:      cards,
	}
}

// LinkProfile stores the external catalog profile URL for a user, then syncs
// the cards visible on that profile. The fetch happens outside the
// transaction; only the writes are transactional.
func (s *userService) LinkProfile(ctx context.Context, userID int64, profileURL string) error {
	fetched, err := s.cards.FetchCards(ctx, profileURL)
	if err != nil {
		return fmt.Errorf("failed to fetch cards from profile: %w", err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.UserRepository().EnsureUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to ensure account: %w", err)
	}

	if err := uow.UserRepository().SetProfileURL(ctx, userID, &profileURL); err != nil {
		return fmt.Errorf("failed to set profile URL: %w", err)
	}

	existing, err := uow.CardRepository().GetByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get existing cards: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, card := range existing {
		known[card.ExternalID] = true
	}

	added := 0
	for _, card := range fetched {
		if known[card.ExternalID] {
			continue
		}
		card.OwnerUserID = userID
		if err := uow.CardRepository().Create(ctx, &card); err != nil {
			return fmt.Errorf("failed to store card %q: %w", card.ExternalID, err)
		}
		added++
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if added > 0 {
		log.WithFields(log.Fields{
			"userID": userID,
			"added":  added,
		}).Info("Cards synced from linked profile")
	}

	return nil
}

// ListAccounts returns users joined with their balances, newest first.
func (s *userService) ListAccounts(ctx context.Context, limit int) ([]*models.UserAccount, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	accounts, err := uow.UserRepository().ListAccounts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return accounts, nil
}

// GetCards returns the cards owned by a user.
func (s *userService) GetCards(ctx context.Context, userID int64) ([]*models.Card, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cards, err := uow.CardRepository().GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return cards, nil
}
