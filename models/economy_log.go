package models

import (
	"time"
)

// ActionTag identifies the kind of action an economy log entry records.
type ActionTag string

const (
	ActionDaily       ActionTag = "daily"
	ActionCoinflip    ActionTag = "coinflip"
	ActionAdminAdjust ActionTag = "admin_adjust"
)

// EconomyLog is one immutable audit entry. Entries are append-only and
// monotonically ordered by ID; the balance of a user is exactly the sum of
// the non-null amounts of their entries.
type EconomyLog struct {
	ID        int64          `db:"id"`
	UserID    *int64         `db:"user_id"` // nil for system-level entries
	Action    ActionTag      `db:"action"`
	Amount    *int64         `db:"amount"` // nil for non-monetary entries
	Metadata  map[string]any `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
}
