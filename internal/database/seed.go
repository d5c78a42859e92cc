package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// defaultCategories seeds the category picker so the first listing can be
// created without an admin step.
var defaultCategories = []string{
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Collectibles",
	"Vehicles",
	"Sports",
	"Toys",
	"Other",
}

// Seed populates the database with initial development data: the default
// category set and a demo user. It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, name := range defaultCategories {
		if _, err := db.Exec(`
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, "demo", "demo@gavel.local", "Demo", "Seller", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert demo user: %w", err)
	}

	slog.Info("database seeded with default categories and demo user",
		"username", "demo",
		"password", "demo",
	)

	return nil
}
