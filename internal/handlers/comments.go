// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"gavel/internal/auction"
	"gavel/internal/store"
)

// Comments serves the threaded comment sub-resource of a listing.
type Comments struct {
	engine *auction.Engine
	users  *store.UserStore
}

// NewComments builds the comment handler group.
func NewComments(engine *auction.Engine, users *store.UserStore) *Comments {
	return &Comments{engine: engine, users: users}
}

// List handles GET /api/listings/{id}/comments. Pagination applies to
// top-level comments; replies ride along with their parent.
func (c *Comments) List(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	page, limit := pageParams(r, auction.DefaultCommentLimit)
	result, err := c.engine.ListComments(id, page, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated{
		Count:    result.Count,
		NumPages: result.NumPages,
		Results:  result.Results,
	})
}

// Create handles POST /api/listings/{id}/comments.
func (c *Comments) Create(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, c.users)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	var payload struct {
		Comment  string `json:"comment"`
		ParentID string `json:"parent_comment_id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var parentID *uuid.UUID
	if payload.ParentID != "" {
		parsed, err := uuid.Parse(payload.ParentID)
		if err != nil {
			writeDomainError(w, auction.ErrParentNotFound)
			return
		}
		parentID = &parsed
	}
	comment, err := c.engine.PostComment(id, user, payload.Comment, parentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	comment.AuthorName = user.DisplayName()
	writeJSON(w, http.StatusCreated, comment)
}
