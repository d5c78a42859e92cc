// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// engine_test.go provides the shared test database helper and fixtures
// for the engine integration tests. Tests are skipped if PostgreSQL is
// not available.
package auction

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"gavel/internal/database"
	"gavel/internal/models"
	"gavel/internal/store"
	"gavel/internal/view"
)

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "gavel")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "gavel")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEngine builds an engine over the test database with a seeded
// obfuscator.
func testEngine(t *testing.T, db *sql.DB) *Engine {
	t.Helper()
	return NewEngine(db,
		store.NewListingStore(db),
		store.NewCommentStore(db),
		store.NewCategoryStore(db),
		view.NewDefaultObfuscator(),
	)
}

// testUser creates a user with a unique username. Deleting it cascades to
// the user's listings, bids, comments, ratings, and watchlist rows.
func testUser(t *testing.T, db *sql.DB, prefix string) *models.User {
	t.Helper()

	username := fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
	user, err := store.NewUserStore(db).Create(username, username+"@engine-test.local", prefix, "Tester", "testpass123")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})
	return user
}

// testCategory creates a category with a unique name.
func testCategory(t *testing.T, db *sql.DB) *models.Category {
	t.Helper()

	category, err := store.NewCategoryStore(db).Create("engine-test-" + uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE id = $1", category.ID)
	})
	return category
}

// testListing creates an active listing owned by the given user.
func testListing(t *testing.T, e *Engine, owner *models.User, category *models.Category, startingBid int64) *models.Listing {
	t.Helper()

	listing, err := e.CreateListing(owner, ListingInput{
		Title:       "Engine test item",
		Description: "A thing under test",
		ImageURL:    "https://img.example/test.jpg",
		StartingBid: startingBid,
		CategoryID:  category.ID,
	})
	if err != nil {
		t.Fatalf("create test listing: %v", err)
	}
	return listing
}
