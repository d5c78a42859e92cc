package auction

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// RateListing records a 1-5 rating. Each user rates a listing at most
// once; the unique index enforces that atomically, so two racing inserts
// cannot both succeed.
func (e *Engine) RateListing(listingID uuid.UUID, user *models.User, value int) (*models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	listing, err := e.listings.FindByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	if listing.UserID == user.ID {
		return nil, ErrSelfRating
	}

	rating := &models.Rating{}
	err = e.db.QueryRow(`
		INSERT INTO ratings (listing_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, listing_id) DO NOTHING
		RETURNING id, listing_id, user_id, rating, created_at, updated_at
	`, listingID, user.ID, value).Scan(
		&rating.ID, &rating.ListingID, &rating.UserID, &rating.Value,
		&rating.CreatedAt, &rating.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDuplicateRating
	}
	if err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	return rating, nil
}

// AverageRating returns the arithmetic mean of a listing's ratings, or 0
// when it has none. Callers never see null.
func (e *Engine) AverageRating(listingID uuid.UUID) (float64, error) {
	var avg float64
	err := e.db.QueryRow(`
		SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE listing_id = $1
	`, listingID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}
