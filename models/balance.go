package models

import (
	"time"
)

// Balance is the single mutable balance per user. It is only ever changed
// through the ledger, which appends a matching EconomyLog entry in the same
// transaction.
type Balance struct {
	UserID    int64     `db:"user_id"`
	Balance   int64     `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}
