// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// PlaceBid validates and records a bid. The whole read-validate-insert
// sequence runs inside a transaction holding a row lock on the listing, so
// two simultaneous bidders cannot both pass validation against a stale
// maximum.
func (e *Engine) PlaceBid(ctx context.Context, listingID uuid.UUID, user *models.User, amount int64) (*models.Bid, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("place bid begin: %w", err)
	}
	defer tx.Rollback()

	listing, err := lockListing(tx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.Active {
		return nil, ErrListingClosed
	}
	if listing.UserID == user.ID {
		return nil, ErrSelfBid
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// Current bid is the highest recorded amount, or the starting bid when
	// no bids exist. Ties are rejected: a new bid must strictly exceed it.
	var (
		highest  sql.NullInt64
		bidCount int
	)
	err = tx.QueryRow(`
		SELECT MAX(amount), COUNT(*) FROM bids WHERE listing_id = $1
	`, listingID).Scan(&highest, &bidCount)
	if err != nil {
		return nil, fmt.Errorf("read highest bid: %w", err)
	}

	floor := listing.StartingBid
	if bidCount > 0 {
		floor = highest.Int64
	}
	if amount <= floor {
		return nil, fmt.Errorf("%w (current bid %d)", ErrBidTooLow, floor)
	}

	bid := &models.Bid{}
	err = tx.QueryRow(`
		INSERT INTO bids (listing_id, user_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, listing_id, user_id, amount, winner, created_at, updated_at
	`, listingID, user.ID, amount).Scan(
		&bid.ID, &bid.ListingID, &bid.UserID, &bid.Amount,
		&bid.Winner, &bid.CreatedAt, &bid.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("place bid commit: %w", err)
	}
	return bid, nil
}

// CurrentBid returns the listing's highest bid amount, falling back to its
// starting bid when no bids exist.
func (e *Engine) CurrentBid(listingID uuid.UUID) (int64, error) {
	var current int64
	err := e.db.QueryRow(`
		SELECT COALESCE(MAX(b.amount), l.starting_bid)
		FROM listings l
		LEFT JOIN bids b ON b.listing_id = l.id
		WHERE l.id = $1
		GROUP BY l.starting_bid
	`, listingID).Scan(&current)
	if err == sql.ErrNoRows {
		return 0, ErrListingNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("current bid: %w", err)
	}
	return current, nil
}

// Winner returns the bid flagged as winning on a listing, or nil if the
// listing is still open or closed without bids.
func (e *Engine) Winner(listingID uuid.UUID) (*models.Bid, error) {
	bid := &models.Bid{}
	err := e.db.QueryRow(`
		SELECT id, listing_id, user_id, amount, winner, created_at, updated_at
		FROM bids WHERE listing_id = $1 AND winner
	`, listingID).Scan(
		&bid.ID, &bid.ListingID, &bid.UserID, &bid.Amount,
		&bid.Winner, &bid.CreatedAt, &bid.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find winner: %w", err)
	}
	return bid, nil
}

// lockListing reads a listing inside the transaction with a FOR UPDATE row
// lock, serializing bid placement and closing per listing.
func lockListing(tx *sql.Tx, id uuid.UUID) (*models.Listing, error) {
	l := &models.Listing{}
	err := tx.QueryRow(`
		SELECT id, user_id, title, description, image_url, active, starting_bid,
		       category_id, latitude, longitude, created_at, updated_at
		FROM listings WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description, &l.ImageURL, &l.Active,
		&l.StartingBid, &l.CategoryID, &l.Latitude, &l.Longitude,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock listing: %w", err)
	}
	return l, nil
}
