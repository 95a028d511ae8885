package models

import (
	"time"
)

// GameBan restricts a user from game-like actions. At most one row per user;
// the row is upserted, never deleted. "Active" is derived at evaluation time,
// not stored.
//
//   - ActiveUntil set: the ban runs until that instant (exclusive).
//   - ActiveUntil nil with a reason: permanent ban.
//   - Both fields nil: the ban has been lifted.
type GameBan struct {
	UserID      int64      `db:"user_id"`
	ActiveUntil *time.Time `db:"active_until"`
	Reason      *string    `db:"reason"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// ActiveAt reports whether the ban applies at the given instant. A nil
// receiver (no ban row) is never active.
func (b *GameBan) ActiveAt(now time.Time) bool {
	if b == nil {
		return false
	}
	if b.ActiveUntil == nil {
		// Lifted bans have both fields cleared; a reason without an
		// expiry means permanent.
		return b.Reason != nil
	}
	return b.ActiveUntil.After(now)
}
