package models

import (
	"time"
)

// User represents a chat user known to the economy. A row is created the
// first time any operation touches the user's ID.
type User struct {
	UserID           int64     `db:"user_id"`
	LinkedProfileURL *string   `db:"linked_profile_url"`
	CreatedAt        time.Time `db:"created_at"`
}

// UserAccount is the admin panel's view of a user joined with their balance.
type UserAccount struct {
	UserID           int64     `db:"user_id"`
	LinkedProfileURL *string   `db:"linked_profile_url"`
	Balance          int64     `db:"balance"`
	CreatedAt        time.Time `db:"created_at"`
}
