// Package provider abstracts where collectible cards come from. The external
// catalog's page structure is not settled yet, so the only implementation is
// a placeholder; the ledger core never depends on this package.
package provider

import (
	"context"

	"coinbot/models"
)

// CardProvider fetches the cards visible on an external profile page.
type CardProvider interface {
	FetchCards(ctx context.Context, profileURL string) ([]models.Card, error)
}

// PlaceholderProvider is a CardProvider that finds nothing.
// TODO: replace with the catalog scraper once the profile DOM is known.
type PlaceholderProvider struct{}

func (PlaceholderProvider) FetchCards(ctx context.Context, profileURL string) ([]models.Card, error) {
	return nil, nil
}
