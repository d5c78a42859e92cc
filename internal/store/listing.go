// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// ListingStore handles all listing-related database operations.
type ListingStore struct {
	db *sql.DB
}

// NewListingStore creates a new ListingStore with the given database connection.
func NewListingStore(db *sql.DB) *ListingStore {
	return &ListingStore{db: db}
}

const listingColumns = `id, user_id, title, description, image_url, active, starting_bid, category_id, latitude, longitude, created_at, updated_at`

// ListingFilter selects a page of listings. Mode narrows the set
// (active/closed/winner/my/watchlist; anything else means no narrowing),
// Query restricts titles by case-insensitive substring, and CategoryID or
// WatchedBy restrict the base set before the mode applies.
type ListingFilter struct {
	Mode       string
	Query      string
	Viewer     *uuid.UUID
	CategoryID *uuid.UUID
	WatchedBy  *uuid.UUID
	Page       int
	Limit      int
}

// viewerScoped reports whether the filter mode depends on who is asking.
func (f ListingFilter) viewerScoped() bool {
	switch f.Mode {
	case "winner", "my", "watchlist":
		return true
	}
	return false
}

// List returns one page of listings matching the filter, newest first,
// along with the total match count. Viewer-scoped modes with no viewer
// match nothing.
func (s *ListingStore) List(f ListingFilter) ([]models.Listing, int, error) {
	if f.viewerScoped() && f.Viewer == nil {
		return nil, 0, nil
	}

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch f.Mode {
	case "active":
		conds = append(conds, "l.active = TRUE")
	case "closed":
		conds = append(conds, "l.active = FALSE")
	case "winner":
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM bids b WHERE b.listing_id = l.id AND b.user_id = %s AND b.winner)",
			arg(*f.Viewer)))
	case "my":
		conds = append(conds, "l.user_id = "+arg(*f.Viewer))
	case "watchlist":
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM watchlists w WHERE w.listing_id = l.id AND w.user_id = %s)",
			arg(*f.Viewer)))
	}

	if f.Query != "" {
		conds = append(conds, "l.title ILIKE "+arg("%"+f.Query+"%"))
	}
	if f.CategoryID != nil {
		conds = append(conds, "l.category_id = "+arg(*f.CategoryID))
	}
	if f.WatchedBy != nil {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM watchlists w2 WHERE w2.listing_id = l.id AND w2.user_id = %s)",
			arg(*f.WatchedBy)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM listings l`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	query := `SELECT ` + prefixColumns("l", listingColumns) + ` FROM listings l` + where +
		` ORDER BY l.created_at DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	return listings, total, rows.Err()
}

// ListActive returns every active listing, newest first. Used for the map view.
func (s *ListingStore) ListActive() ([]models.Listing, error) {
	rows, err := s.db.Query(`
		SELECT ` + listingColumns + ` FROM listings
		WHERE active = TRUE ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list active listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// FindByID retrieves a listing by its UUID. Returns nil if not found.
func (s *ListingStore) FindByID(id uuid.UUID) (*models.Listing, error) {
	l := &models.Listing{}
	err := s.db.QueryRow(`
		SELECT `+listingColumns+` FROM listings WHERE id = $1
	`, id).Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description, &l.ImageURL, &l.Active,
		&l.StartingBid, &l.CategoryID, &l.Latitude, &l.Longitude,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find listing by id: %w", err)
	}
	return l, nil
}

// Create inserts a new listing and returns it with the generated ID.
func (s *ListingStore) Create(l *models.Listing) (*models.Listing, error) {
	result := &models.Listing{}
	err := s.db.QueryRow(`
		INSERT INTO listings (user_id, title, description, image_url, starting_bid, category_id, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+listingColumns+`
	`, l.UserID, l.Title, l.Description, l.ImageURL, l.StartingBid,
		l.CategoryID, l.Latitude, l.Longitude,
	).Scan(
		&result.ID, &result.UserID, &result.Title, &result.Description,
		&result.ImageURL, &result.Active, &result.StartingBid, &result.CategoryID,
		&result.Latitude, &result.Longitude, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable listing fields (title, description, image,
// category, coordinates). Starting bid and owner never change after creation.
func (s *ListingStore) Update(l *models.Listing) error {
	_, err := s.db.Exec(`
		UPDATE listings SET
			title = $1, description = $2, image_url = $3, category_id = $4,
			latitude = $5, longitude = $6, updated_at = NOW()
		WHERE id = $7
	`, l.Title, l.Description, l.ImageURL, l.CategoryID, l.Latitude, l.Longitude, l.ID)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows for the shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(r rowScanner, l *models.Listing) error {
	if err := r.Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description, &l.ImageURL, &l.Active,
		&l.StartingBid, &l.CategoryID, &l.Latitude, &l.Longitude,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return fmt.Errorf("scan listing: %w", err)
	}
	return nil
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
