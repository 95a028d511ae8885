package models

import (
	"time"
)

// Card is a collectible owned by a user, identified by the external catalog
// it came from. Acquisition is not implemented yet; the ownership relation
// is part of the schema regardless.
type Card struct {
	ID          int64     `db:"id"`
	OwnerUserID int64     `db:"owner_user_id"`
	Source      string    `db:"source"`
	ExternalID  string    `db:"external_id"`
	Name        string    `db:"name"`
	Verified    bool      `db:"verified"`
	CreatedAt   time.Time `db:"created_at"`
}
