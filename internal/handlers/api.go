// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API. Handlers decode the request,
// invoke the auction engine or a store, and translate domain errors to
// HTTP statuses.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gavel/internal/auction"
	"gavel/internal/middleware"
	"gavel/internal/models"
	"gavel/internal/store"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON serializes v to the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", "error", err)
	}
}

// writeError sends the {"error": msg} body the client expects.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps an auction engine error to its HTTP status and
// sends it. Unrecognized errors become opaque 500s.
func writeDomainError(w http.ResponseWriter, err error) {
	status, ok := domainStatus(err)
	if !ok {
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeError(w, status, err.Error())
}

// domainStatus classifies a domain error per the error taxonomy:
// validation 400, authorization 403, not-found 404, conflict 409.
func domainStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, auction.ErrMissingField),
		errors.Is(err, auction.ErrInvalidAmount),
		errors.Is(err, auction.ErrInvalidRating),
		errors.Is(err, auction.ErrCommentTooLong):
		return http.StatusBadRequest, true
	case errors.Is(err, auction.ErrNotOwner),
		errors.Is(err, auction.ErrSelfBid),
		errors.Is(err, auction.ErrSelfWatch),
		errors.Is(err, auction.ErrSelfRating):
		return http.StatusForbidden, true
	case errors.Is(err, auction.ErrListingNotFound),
		errors.Is(err, auction.ErrCategoryNotFound),
		errors.Is(err, auction.ErrParentNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, auction.ErrListingClosed),
		errors.Is(err, auction.ErrBidTooLow),
		errors.Is(err, auction.ErrDuplicateRating):
		return http.StatusConflict, true
	}
	return 0, false
}

// decodeJSON reads a size-capped JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// pageParams reads page and limit query parameters, falling back to the
// given default limit. Out-of-range values fall back too.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// filterParams reads the listing filter mode and search query. The mode
// defaults to "active" so browsing surfaces never show closed auctions
// unless asked.
func filterParams(r *http.Request) (mode, query string) {
	mode = r.URL.Query().Get("filter")
	if mode == "" {
		mode = "active"
	}
	return mode, r.URL.Query().Get("query")
}

// paginated is the envelope for every paginated collection response.
type paginated struct {
	Count    int `json:"count"`
	NumPages int `json:"num_pages"`
	Results  any `json:"results"`
}

// urlID parses the {id} chi URL parameter as a UUID.
func urlID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// currentUser loads the full user record behind the request's session.
// Returns nil for anonymous requests or stale sessions.
func currentUser(r *http.Request, users *store.UserStore) *models.User {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return nil
	}
	user, err := users.FindByID(sess.UserID)
	if err != nil {
		slog.Error("current user lookup failed", "error", err)
		return nil
	}
	return user
}
