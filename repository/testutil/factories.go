package testutil

import (
	"time"

	"coinbot/models"
)

// CreateTestLog creates an audit entry with default values
func CreateTestLog(userID int64, action models.ActionTag, amount int64) *models.EconomyLog {
	return &models.EconomyLog{
		UserID: &userID,
		Action: action,
		Amount: &amount,
		Metadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestBan creates a game ban active for the given duration from now
func CreateTestBan(userID int64, duration time.Duration, reason string) *models.GameBan {
	until := time.Now().UTC().Add(duration)
	return &models.GameBan{
		UserID:      userID,
		ActiveUntil: &until,
		Reason:      &reason,
	}
}

// CreateTestCard creates a card with default values
func CreateTestCard(ownerUserID int64, externalID string) *models.Card {
	return &models.Card{
		OwnerUserID: ownerUserID,
		Source:      "catalog",
		ExternalID:  externalID,
		Name:        "Test Card " + externalID,
	}
}
