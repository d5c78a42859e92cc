package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when no users exist, so calling it twice is
	// safe. We don't clear the database first because other test packages
	// may be running concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}

	var categoriesAfterFirst, usersAfterFirst int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categoriesAfterFirst); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&usersAfterFirst); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if usersAfterFirst == 0 {
		t.Fatal("expected at least one user after seeding")
	}

	// The second call must be a no-op.
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var categoriesAfterSecond, usersAfterSecond int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categoriesAfterSecond); err != nil {
		t.Fatalf("recount categories: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&usersAfterSecond); err != nil {
		t.Fatalf("recount users: %v", err)
	}
	if categoriesAfterSecond != categoriesAfterFirst || usersAfterSecond != usersAfterFirst {
		t.Errorf("re-seed changed row counts: categories %d -> %d, users %d -> %d",
			categoriesAfterFirst, categoriesAfterSecond, usersAfterFirst, usersAfterSecond)
	}
}
