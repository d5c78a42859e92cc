// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"gavel/internal/auction"
	"gavel/internal/models"
	"gavel/internal/store"
)

// Listings serves the listing collection, the per-listing detail and its
// sub-resources (bids, close, watch, ratings), and the map feed.
type Listings struct {
	engine *auction.Engine
	users  *store.UserStore
}

// NewListings builds the listing handler group.
func NewListings(engine *auction.Engine, users *store.UserStore) *Listings {
	return &Listings{engine: engine, users: users}
}

// requireUser resolves the session user or writes the 401. A session whose
// user no longer exists counts as unauthenticated.
func (l *Listings) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	user := currentUser(r, l.users)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
	}
	return user
}

// listingPayload is the request body for create and update.
type listingPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartingBid int64    `json:"starting_bid"`
	ImageURL    string   `json:"image_url"`
	CategoryID  string   `json:"category_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (p *listingPayload) input() auction.ListingInput {
	in := auction.ListingInput{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		StartingBid: p.StartingBid,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
	// An unparseable category id stays uuid.Nil and fails validation as
	// a missing field, same as an absent one.
	if id, err := uuid.Parse(p.CategoryID); err == nil {
		in.CategoryID = id
	}
	return in
}

// List handles GET /api/listings. The filter parameter defaults to the
// active set; query narrows by title substring.
func (l *Listings) List(w http.ResponseWriter, r *http.Request) {
	viewer := currentUser(r, l.users)
	mode, query := filterParams(r)
	page, limit := pageParams(r, auction.DefaultListingLimit)

	f := store.ListingFilter{
		Mode:  mode,
		Query: query,
		Page:  page,
		Limit: limit,
	}
	if viewer != nil {
		f.Viewer = &viewer.ID
	}

	l.writePage(w, viewer, f)
}

// Create handles POST /api/listings.
func (l *Listings) Create(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	var payload listingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	listing, err := l.engine.CreateListing(user, payload.input())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	l.writeProjection(w, http.StatusCreated, listing, user)
}

// Detail handles GET /api/listings/{id}. Anonymous viewers get the
// obfuscated projection.
func (l *Listings) Detail(w http.ResponseWriter, r *http.Request) {
	listing, ok := l.loadListing(w, r)
	if !ok {
		return
	}
	l.writeProjection(w, http.StatusOK, listing, currentUser(r, l.users))
}

// Update handles PUT /api/listings/{id}. Only the owner may edit.
func (l *Listings) Update(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	var payload listingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	listing, err := l.engine.UpdateListing(id, user, payload.input())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	l.writeProjection(w, http.StatusOK, listing, user)
}

// Close handles POST /api/listings/{id}/close. Closing an already closed
// listing succeeds without changing anything.
func (l *Listings) Close(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	listing, err := l.engine.CloseListing(r.Context(), id, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	l.writeProjection(w, http.StatusOK, listing, user)
}

// PlaceBid handles POST /api/listings/{id}/bids. The response carries the
// refreshed projection so the client can render the new current bid.
func (l *Listings) PlaceBid(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	var payload struct {
		Bid int64 `json:"bid"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := l.engine.PlaceBid(r.Context(), id, user, payload.Bid); err != nil {
		writeDomainError(w, err)
		return
	}
	listing, err := l.engine.Listings().FindByID(id)
	if err != nil || listing == nil {
		writeDomainError(w, auction.ErrListingNotFound)
		return
	}
	l.writeProjection(w, http.StatusCreated, listing, user)
}

// Watch handles POST /api/listings/{id}/watch, toggling the viewer's
// watchlist membership.
func (l *Listings) Watch(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	watching, err := l.engine.ToggleWatch(id, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"watching": watching})
}

// Rate handles POST /api/listings/{id}/ratings. Each user rates a listing
// at most once.
func (l *Listings) Rate(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	var payload struct {
		Rating int `json:"rating"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := l.engine.RateListing(id, user, payload.Rating); err != nil {
		writeDomainError(w, err)
		return
	}
	listing, err := l.engine.Listings().FindByID(id)
	if err != nil || listing == nil {
		writeDomainError(w, auction.ErrListingNotFound)
		return
	}
	l.writeProjection(w, http.StatusCreated, listing, user)
}

// Map handles GET /api/listings/map: every active listing's projection,
// unpaginated, for the map view. Coordinates obey the same privacy rule
// as the detail endpoint.
func (l *Listings) Map(w http.ResponseWriter, r *http.Request) {
	viewer := currentUser(r, l.users)
	listings, err := l.engine.Listings().ListActive()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views, err := l.engine.ProjectMany(listings, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// WatchlistIndex handles GET /api/watchlist. The page accepts the same
// filter and query parameters as the main index, scoped to the viewer's
// watched listings.
func (l *Listings) WatchlistIndex(w http.ResponseWriter, r *http.Request) {
	user := l.requireUser(w, r)
	if user == nil {
		return
	}
	mode, query := filterParams(r)
	page, limit := pageParams(r, auction.DefaultListingLimit)
	f := store.ListingFilter{
		Mode:      mode,
		Query:     query,
		Viewer:    &user.ID,
		WatchedBy: &user.ID,
		Page:      page,
		Limit:     limit,
	}
	l.writePage(w, user, f)
}

// writePage runs a filtered query and writes the paginated projection
// envelope.
func (l *Listings) writePage(w http.ResponseWriter, viewer *models.User, f store.ListingFilter) {
	result, err := l.engine.FilterListings(f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views, err := l.engine.ProjectMany(result.Results, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated{
		Count:    result.Count,
		NumPages: result.NumPages,
		Results:  views,
	})
}

// writeProjection writes a single listing's viewer projection.
func (l *Listings) writeProjection(w http.ResponseWriter, status int, listing *models.Listing, viewer *models.User) {
	projected, err := l.engine.Project(listing, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, status, projected)
}

// loadListing resolves the {id} parameter to a listing or writes the 404.
func (l *Listings) loadListing(w http.ResponseWriter, r *http.Request) (*models.Listing, bool) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return nil, false
	}
	listing, err := l.engine.Listings().FindByID(id)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	if listing == nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return nil, false
	}
	return listing, true
}
