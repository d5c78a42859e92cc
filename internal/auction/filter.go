package auction

import (
	"gavel/internal/models"
	"gavel/internal/store"
)

// Pagination defaults for listing queries, matching the client's page size.
const (
	DefaultListingLimit = 8
	MaxPageLimit        = 100
)

// ListingPage is one page of a filtered listing query.
type ListingPage struct {
	Count    int
	NumPages int
	Results  []models.Listing
}

// FilterListings runs a paginated listing query. Recognized modes are
// active, closed, winner, my, and watchlist; any other value applies no
// mode filter. The title search applies after the mode. Results are
// ordered by creation time descending.
func (e *Engine) FilterListings(f store.ListingFilter) (*ListingPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultListingLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}

	listings, total, err := e.listings.List(f)
	if err != nil {
		return nil, err
	}

	return &ListingPage{
		Count:    total,
		NumPages: numPages(total, f.Limit),
		Results:  listings,
	}, nil
}

// numPages reports how many pages a result set spans. An empty set still
// has one (empty) page, so callers can always render page 1.
func numPages(total, limit int) int {
	if total == 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
