package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistEntry records that a user is watching a listing. Membership is
// the entry's existence; un-watching deletes the row.
type WatchlistEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
