// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package view assembles the outward-facing representation of a listing
// for a particular viewer. Projection is a pure function over the entity,
// its aggregate stats, and the viewer's relationship to it; nothing is
// cached on the entity.
package view

import (
	"time"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// Stats carries the aggregate values computed from a listing's bids,
// ratings, and related rows.
type Stats struct {
	CurrentBid    int64
	BidCount      int
	AverageRating float64
	WinnerID      *uuid.UUID // user holding the winning bid, once closed
	WinnerName    string
	OwnerName     string
	CategoryName  string
}

// Viewer describes who is looking at the listing. A nil UserID means the
// viewer is anonymous.
type Viewer struct {
	UserID   *uuid.UUID
	Rating   *int
	Watching bool
}

// ListingView is the per-viewer DTO returned by the API.
type ListingView struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartingBid   int64      `json:"starting_bid"`
	ImageURL      string     `json:"image_url"`
	CategoryID    uuid.UUID  `json:"category_id"`
	CategoryName  string     `json:"category_name"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	OwnerName     string     `json:"owner_name"`
	AverageRating float64    `json:"average_rating"`
	CurrentBid    int64      `json:"current_bid"`
	ViewerRating  *int       `json:"viewer_rating"`
	Watching      bool       `json:"watching"`
	IsOwner       bool       `json:"is_owner"`
	BidCount      int        `json:"bid_count"`
	WinnerID      *uuid.UUID `json:"winner_id"`
	WinnerName    *string    `json:"winner_name"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
}

// Project builds the viewer-specific representation of a listing.
//
// Coordinates follow the privacy rule: the owner and the winning bidder see
// the stored values; every other viewer, anonymous ones included, sees each
// axis shifted by an independently drawn offset. Listings without stored
// coordinates project as (0, 0).
func Project(l *models.Listing, stats Stats, viewer Viewer, ob *Obfuscator) ListingView {
	isOwner := viewer.UserID != nil && *viewer.UserID == l.UserID
	isWinner := viewer.UserID != nil && stats.WinnerID != nil && *viewer.UserID == *stats.WinnerID

	v := ListingView{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		StartingBid:   l.StartingBid,
		ImageURL:      l.ImageURL,
		CategoryID:    l.CategoryID,
		CategoryName:  stats.CategoryName,
		OwnerID:       l.UserID,
		OwnerName:     stats.OwnerName,
		AverageRating: stats.AverageRating,
		CurrentBid:    stats.CurrentBid,
		ViewerRating:  viewer.Rating,
		Watching:      viewer.Watching,
		IsOwner:       isOwner,
		BidCount:      stats.BidCount,
		WinnerID:      stats.WinnerID,
		Active:        l.Active,
		CreatedAt:     l.CreatedAt,
	}

	if stats.WinnerID != nil {
		name := stats.WinnerName
		v.WinnerName = &name
	}

	if l.HasCoordinates() {
		v.Latitude = *l.Latitude
		v.Longitude = *l.Longitude
		if !isOwner && !isWinner {
			v.Latitude += ob.Offset()
			v.Longitude += ob.Offset()
		}
	}

	return v
}
