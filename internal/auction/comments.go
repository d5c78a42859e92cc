// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// Default page size for comment listings.
const DefaultCommentLimit = 10

// CommentNode is a comment with its materialized reply tree. Replies are
// ordered newest first at every level.
type CommentNode struct {
	models.Comment
	Replies []CommentNode `json:"replies"`
}

// CommentPage is one page of top-level comments on a listing.
type CommentPage struct {
	Count    int
	NumPages int
	Results  []CommentNode
}

// PostComment validates and records a comment on a listing. A parent ID,
// when given, must resolve to an existing comment on the same listing.
func (e *Engine) PostComment(listingID uuid.UUID, author *models.User, body string, parentID *uuid.UUID) (*models.Comment, error) {
	listing, err := e.listings.FindByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment", ErrMissingField)
	}
	if utf8.RuneCountInString(body) > models.MaxCommentLen {
		return nil, ErrCommentTooLong
	}

	if parentID != nil {
		parent, err := e.comments.FindByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ListingID != listingID {
			return nil, ErrParentNotFound
		}
	}

	comment, err := e.comments.Create(&models.Comment{
		ListingID: listingID,
		UserID:    author.ID,
		Body:      body,
		ParentID:  parentID,
	})
	if err != nil {
		return nil, err
	}
	comment.AuthorName = author.DisplayName()
	return comment, nil
}

// ListComments returns one page of a listing's top-level comments, newest
// first, each carrying its full reply tree.
func (e *Engine) ListComments(listingID uuid.UUID, page, limit int) (*CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultCommentLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	all, err := e.comments.ListByListing(listingID)
	if err != nil {
		return nil, err
	}

	roots := BuildCommentTree(all)

	total := len(roots)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &CommentPage{
		Count:    total,
		NumPages: numPages(total, limit),
		Results:  roots[start:end],
	}, nil
}

// BuildCommentTree materializes the reply trees from a flat comment slice
// using parent-id adjacency. Input order is preserved at every level, so a
// newest-first slice yields newest-first trees. Comments whose parent is
// missing from the slice are dropped.
func BuildCommentTree(comments []models.Comment) []CommentNode {
	children := make(map[uuid.UUID][]models.Comment)
	var tops []models.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			tops = append(tops, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(c models.Comment) CommentNode
	build = func(c models.Comment) CommentNode {
		node := CommentNode{Comment: c, Replies: []CommentNode{}}
		for _, reply := range children[c.ID] {
			node.Replies = append(node.Replies, build(reply))
		}
		return node
	}

	roots := make([]CommentNode, 0, len(tops))
	for _, c := range tops {
		roots = append(roots, build(c))
	}
	return roots
}
