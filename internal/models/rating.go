package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a 1-5 score a user gives a listing. At most one rating per
// (user, listing) pair, and owners cannot rate their own listings.
type Rating struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	UserID    uuid.UUID `json:"user_id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
