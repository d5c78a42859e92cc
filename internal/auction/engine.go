// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auction implements the marketplace domain rules: bid validation
// and recording, listing lifecycle and winner assignment, watchlist
// toggling, ratings, threaded comments, and filtered listing queries.
// Monetary amounts are integers; bid amounts strictly increase per listing.
//
// State-changing operations leave the database untouched on error. The
// bid/close critical sections run inside a transaction that locks the
// listing row, so concurrent bidders on the same listing serialize.
package auction

import (
	"database/sql"

	"gavel/internal/store"
	"gavel/internal/view"
)

// Engine carries the domain operations. It owns the transactional SQL for
// the rule-bearing critical sections and delegates plain reads and writes
// to the entity stores.
type Engine struct {
	db         *sql.DB
	listings   *store.ListingStore
	comments   *store.CommentStore
	categories *store.CategoryStore
	obfuscator *view.Obfuscator
}

// NewEngine creates an Engine over the given database connection.
// The obfuscator supplies the coordinate jitter for non-privileged viewers;
// inject a seeded one in tests.
func NewEngine(db *sql.DB, listings *store.ListingStore, comments *store.CommentStore, categories *store.CategoryStore, ob *view.Obfuscator) *Engine {
	return &Engine{
		db:         db,
		listings:   listings,
		comments:   comments,
		categories: categories,
		obfuscator: ob,
	}
}

// Listings exposes the listing store for handlers that only need reads.
func (e *Engine) Listings() *store.ListingStore { return e.listings }
