// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gavel/internal/models"
	"gavel/internal/view"
)

// Project assembles the per-viewer representation of a listing. A nil
// viewer is an anonymous request: no own-rating, no watchlist flag, and
// obfuscated coordinates.
func (e *Engine) Project(listing *models.Listing, viewer *models.User) (*view.ListingView, error) {
	stats, err := e.gatherStats(listing)
	if err != nil {
		return nil, err
	}

	vc := view.Viewer{}
	if viewer != nil {
		id := viewer.ID
		vc.UserID = &id

		vc.Watching, err = e.IsWatching(listing.ID, viewer.ID)
		if err != nil {
			return nil, err
		}

		var rating int
		err = e.db.QueryRow(`
			SELECT rating FROM ratings WHERE listing_id = $1 AND user_id = $2
		`, listing.ID, viewer.ID).Scan(&rating)
		switch {
		case err == sql.ErrNoRows:
			// Unrated: leave nil.
		case err != nil:
			return nil, fmt.Errorf("viewer rating: %w", err)
		default:
			vc.Rating = &rating
		}
	}

	v := view.Project(listing, stats, vc, e.obfuscator)
	return &v, nil
}

// ProjectMany projects a slice of listings for one viewer.
func (e *Engine) ProjectMany(listings []models.Listing, viewer *models.User) ([]view.ListingView, error) {
	views := make([]view.ListingView, 0, len(listings))
	for i := range listings {
		v, err := e.Project(&listings[i], viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// gatherStats computes the viewer-independent aggregates for one listing.
func (e *Engine) gatherStats(listing *models.Listing) (view.Stats, error) {
	stats := view.Stats{}

	err := e.db.QueryRow(`
		SELECT COALESCE(MAX(amount), $2), COUNT(*) FROM bids WHERE listing_id = $1
	`, listing.ID, listing.StartingBid).Scan(&stats.CurrentBid, &stats.BidCount)
	if err != nil {
		return stats, fmt.Errorf("listing bid stats: %w", err)
	}

	err = e.db.QueryRow(`
		SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE listing_id = $1
	`, listing.ID).Scan(&stats.AverageRating)
	if err != nil {
		return stats, fmt.Errorf("listing rating stats: %w", err)
	}

	var (
		owner models.User
		cat   string
	)
	err = e.db.QueryRow(`
		SELECT u.username, u.first_name, u.last_name, c.name
		FROM listings l
		JOIN users u ON u.id = l.user_id
		JOIN categories c ON c.id = l.category_id
		WHERE l.id = $1
	`, listing.ID).Scan(&owner.Username, &owner.FirstName, &owner.LastName, &cat)
	if err != nil {
		return stats, fmt.Errorf("listing owner stats: %w", err)
	}
	stats.OwnerName = owner.DisplayName()
	stats.CategoryName = cat

	var (
		winnerID   uuid.UUID
		winnerUser models.User
	)
	err = e.db.QueryRow(`
		SELECT b.user_id, u.username, u.first_name, u.last_name
		FROM bids b
		JOIN users u ON u.id = b.user_id
		WHERE b.listing_id = $1 AND b.winner
	`, listing.ID).Scan(&winnerID, &winnerUser.Username, &winnerUser.FirstName, &winnerUser.LastName)
	switch {
	case err == sql.ErrNoRows:
		// Open listing, or closed with no bids.
	case err != nil:
		return stats, fmt.Errorf("listing winner stats: %w", err)
	default:
		stats.WinnerID = &winnerID
		stats.WinnerName = winnerUser.DisplayName()
	}

	return stats, nil
}
