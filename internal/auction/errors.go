// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import "errors"

// Validation errors: the request itself is malformed.
var (
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidAmount  = errors.New("bid amount must be a positive integer")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong = errors.New("comment exceeds maximum length")
)

// Authorization errors: the actor lacks rights over the target entity.
var (
	ErrNotOwner   = errors.New("actor does not own the listing")
	ErrSelfBid    = errors.New("owners cannot bid on their own listing")
	ErrSelfWatch  = errors.New("owners cannot watch their own listing")
	ErrSelfRating = errors.New("owners cannot rate their own listing")
)

// Conflict errors: rejected against current state; the caller may resubmit
// with fresh state.
var (
	ErrListingClosed   = errors.New("listing is closed")
	ErrBidTooLow       = errors.New("bid must be greater than the current bid")
	ErrDuplicateRating = errors.New("rating already exists")
)

// Not-found errors.
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrParentNotFound   = errors.New("parent comment not found")
)
