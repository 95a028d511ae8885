package service

import (
	"time"

	"coinbot/models"
)

// evaluateCooldown decides whether a time-boxed action may fire again given
// its most recent audit entry. A nil entry means the action never fired.
// All timestamps are compared in UTC.
func evaluateCooldown(entry *models.EconomyLog, window time.Duration, now time.Time) (allowed bool, remaining time.Duration) {
	if entry == nil {
		return true, 0
	}

	elapsed := now.Sub(entry.CreatedAt.UTC())
	if elapsed >= window {
		return true, 0
	}
	return false, window - elapsed
}
