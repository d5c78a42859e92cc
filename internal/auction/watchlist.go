package auction

import (
	"fmt"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// ToggleWatch flips the (user, listing) watchlist membership: watching
// becomes not-watching and vice versa. Returns the resulting state.
// Calling it twice restores the original membership.
func (e *Engine) ToggleWatch(listingID uuid.UUID, user *models.User) (bool, error) {
	listing, err := e.listings.FindByID(listingID)
	if err != nil {
		return false, err
	}
	if listing == nil {
		return false, ErrListingNotFound
	}
	if listing.UserID == user.ID {
		return false, ErrSelfWatch
	}

	res, err := e.db.Exec(`
		DELETE FROM watchlists WHERE user_id = $1 AND listing_id = $2
	`, user.ID, listingID)
	if err != nil {
		return false, fmt.Errorf("unwatch listing: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unwatch listing: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	// No membership row existed: create one. The unique index absorbs a
	// racing insert, which still leaves the user watching.
	if _, err := e.db.Exec(`
		INSERT INTO watchlists (user_id, listing_id) VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`, user.ID, listingID); err != nil {
		return false, fmt.Errorf("watch listing: %w", err)
	}
	return true, nil
}

// IsWatching reports whether the user has the listing on their watchlist.
func (e *Engine) IsWatching(listingID, userID uuid.UUID) (bool, error) {
	var watching bool
	err := e.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM watchlists WHERE user_id = $1 AND listing_id = $2)
	`, userID, listingID).Scan(&watching)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return watching, nil
}
