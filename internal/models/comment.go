package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a message posted on a listing. A nil ParentID marks a
// top-level comment; replies reference their parent, forming a tree.
// A comment can only reference an already-existing parent, so the tree
// is acyclic by construction.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	ListingID uuid.UUID  `json:"listing_id"`
	UserID    uuid.UUID  `json:"user"`
	Body      string     `json:"comment"`
	ParentID  *uuid.UUID `json:"parent_comment_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Virtual field populated by store queries that join users.
	AuthorName string `json:"name,omitempty"`
}

// MaxCommentLen is the longest comment body accepted.
const MaxCommentLen = 256
