// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// ListingInput carries the client-supplied listing fields for create and
// update. Pointer fields distinguish absent from empty.
type ListingInput struct {
	Title       string
	Description string
	ImageURL    string
	StartingBid int64
	CategoryID  uuid.UUID
	Latitude    *float64
	Longitude   *float64
}

// validate rejects inputs with missing required fields. Starting bid and
// owner are checked only on create; they are immutable afterwards.
func (in *ListingInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title", ErrMissingField)
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("%w: description", ErrMissingField)
	case strings.TrimSpace(in.ImageURL) == "":
		return fmt.Errorf("%w: image_url", ErrMissingField)
	case in.CategoryID == uuid.Nil:
		return fmt.Errorf("%w: category", ErrMissingField)
	}
	// Either both coordinates or neither.
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrMissingField)
	}
	return nil
}

// CreateListing validates the input and records a new active listing owned
// by the given user.
func (e *Engine) CreateListing(owner *models.User, in ListingInput) (*models.Listing, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.StartingBid < 0 {
		return nil, fmt.Errorf("%w: starting_bid", ErrInvalidAmount)
	}

	category, err := e.categories.FindByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return e.listings.Create(&models.Listing{
		UserID:      owner.ID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		StartingBid: in.StartingBid,
		CategoryID:  in.CategoryID,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	})
}

// UpdateListing overwrites a listing's mutable fields (title, description,
// image, category, coordinates). Only the owner may edit; starting bid and
// owner never change.
func (e *Engine) UpdateListing(listingID uuid.UUID, actor *models.User, in ListingInput) (*models.Listing, error) {
	listing, err := e.listings.FindByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	if listing.UserID != actor.ID {
		return nil, ErrNotOwner
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	category, err := e.categories.FindByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.ImageURL = in.ImageURL
	listing.CategoryID = in.CategoryID
	listing.Latitude = in.Latitude
	listing.Longitude = in.Longitude

	if err := e.listings.Update(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// CloseListing transitions a listing to inactive and flags its highest bid
// as the winner. Only the owner may close. Closing an already-closed
// listing is a no-op. Runs under the same per-listing row lock as bid
// placement, so a close cannot race a concurrent bid.
func (e *Engine) CloseListing(ctx context.Context, listingID uuid.UUID, actor *models.User) (*models.Listing, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("close listing begin: %w", err)
	}
	defer tx.Rollback()

	listing, err := lockListing(tx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != actor.ID {
		return nil, ErrNotOwner
	}
	if !listing.Active {
		return listing, nil
	}

	if _, err := tx.Exec(`
		UPDATE listings SET active = FALSE, updated_at = NOW() WHERE id = $1
	`, listingID); err != nil {
		return nil, fmt.Errorf("close listing: %w", err)
	}

	// Flag the maximum-amount bid, if any. Amounts strictly increase, so
	// there is never a tie to break.
	if _, err := tx.Exec(`
		UPDATE bids SET winner = TRUE, updated_at = NOW()
		WHERE id = (
			SELECT id FROM bids WHERE listing_id = $1 ORDER BY amount DESC LIMIT 1
		)
	`, listingID); err != nil {
		return nil, fmt.Errorf("mark winner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("close listing commit: %w", err)
	}

	listing.Active = false
	return listing, nil
}
