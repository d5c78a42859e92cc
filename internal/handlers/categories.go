// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"gavel/internal/auction"
	"gavel/internal/store"
)

// Categories serves the category index and per-category listing pages.
type Categories struct {
	engine     *auction.Engine
	users      *store.UserStore
	categories *store.CategoryStore
}

// NewCategories builds the category handler group.
func NewCategories(engine *auction.Engine, users *store.UserStore, categories *store.CategoryStore) *Categories {
	return &Categories{engine: engine, users: users, categories: categories}
}

// List handles GET /api/categories. Each entry carries its active listing
// count.
func (c *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.List()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.users)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var payload struct {
		Category string `json:"category"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(payload.Category)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	category, err := c.categories.Create(name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// Listings handles GET /api/categories/{id}/listings: the category's
// listings, paginated and filterable like the main index (default
// "active"), with the category name alongside the usual envelope so the
// client can title the page.
func (c *Categories) Listings(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	category, err := c.categories.FindByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	viewer := currentUser(r, c.users)
	mode, query := filterParams(r)
	page, limit := pageParams(r, auction.DefaultListingLimit)
	f := store.ListingFilter{
		Mode:       mode,
		Query:      query,
		CategoryID: &category.ID,
		Page:       page,
		Limit:      limit,
	}
	if viewer != nil {
		f.Viewer = &viewer.ID
	}
	result, err := c.engine.FilterListings(f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views, err := c.engine.ProjectMany(result.Results, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     result.Count,
		"num_pages": result.NumPages,
		"category":  category.Name,
		"results":   views,
	})
}
