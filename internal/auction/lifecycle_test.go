// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreateListingValidation(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	category := testCategory(t, db)

	valid := ListingInput{
		Title:       "Valid item",
		Description: "Looks fine",
		ImageURL:    "https://img.example/ok.jpg",
		StartingBid: 50,
		CategoryID:  category.ID,
	}

	t.Run("missing title", func(t *testing.T) {
		in := valid
		in.Title = "  "
		if _, err := e.CreateListing(seller, in); !errors.Is(err, ErrMissingField) {
			t.Errorf("got %v, want ErrMissingField", err)
		}
	})

	t.Run("missing description", func(t *testing.T) {
		in := valid
		in.Description = ""
		if _, err := e.CreateListing(seller, in); !errors.Is(err, ErrMissingField) {
			t.Errorf("got %v, want ErrMissingField", err)
		}
	})

	t.Run("negative starting bid", func(t *testing.T) {
		in := valid
		in.StartingBid = -1
		if _, err := e.CreateListing(seller, in); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("got %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		in := valid
		in.CategoryID = uuid.New()
		if _, err := e.CreateListing(seller, in); !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("got %v, want ErrCategoryNotFound", err)
		}
	})

	t.Run("latitude without longitude", func(t *testing.T) {
		in := valid
		lat := 45.75
		in.Latitude = &lat
		if _, err := e.CreateListing(seller, in); !errors.Is(err, ErrMissingField) {
			t.Errorf("got %v, want ErrMissingField", err)
		}
	})

	t.Run("zero starting bid allowed", func(t *testing.T) {
		in := valid
		in.StartingBid = 0
		listing, err := e.CreateListing(seller, in)
		if err != nil {
			t.Fatalf("got %v, want success", err)
		}
		if !listing.Active {
			t.Error("new listing should be active")
		}
	})
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	intruder := testUser(t, db, "intruder")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)

	in := ListingInput{
		Title:       "Renamed item",
		Description: "Edited description",
		ImageURL:    "https://img.example/new.jpg",
		CategoryID:  category.ID,
	}

	if _, err := e.UpdateListing(listing.ID, intruder, in); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner update: got %v, want ErrNotOwner", err)
	}

	updated, err := e.UpdateListing(listing.ID, seller, in)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Renamed item" {
		t.Errorf("title: got %q, want %q", updated.Title, "Renamed item")
	}
	if updated.StartingBid != 100 {
		t.Errorf("starting bid must be immutable: got %d, want 100", updated.StartingBid)
	}
}

func TestCloseListingAwardsHighestBid(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	alice := testUser(t, db, "alice")
	bob := testUser(t, db, "bob")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)
	ctx := context.Background()

	if _, err := e.PlaceBid(ctx, listing.ID, alice, 150); err != nil {
		t.Fatalf("alice bid: %v", err)
	}
	if _, err := e.PlaceBid(ctx, listing.ID, bob, 200); err != nil {
		t.Fatalf("bob bid: %v", err)
	}

	// Only the owner can close.
	if _, err := e.CloseListing(ctx, listing.ID, alice); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner close: got %v, want ErrNotOwner", err)
	}

	closed, err := e.CloseListing(ctx, listing.ID, seller)
	if err != nil {
		t.Fatalf("CloseListing: %v", err)
	}
	if closed.Active {
		t.Error("closed listing should be inactive")
	}

	winner, err := e.Winner(listing.ID)
	if err != nil {
		t.Fatalf("Winner: %v", err)
	}
	if winner == nil {
		t.Fatal("expected a winning bid")
	}
	if winner.UserID != bob.ID || winner.Amount != 200 {
		t.Errorf("winner: got user %s amount %d, want bob at 200", winner.UserID, winner.Amount)
	}
}

func TestCloseListingIdempotent(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	bidder := testUser(t, db, "bidder")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)
	ctx := context.Background()

	if _, err := e.PlaceBid(ctx, listing.ID, bidder, 150); err != nil {
		t.Fatalf("bid: %v", err)
	}
	if _, err := e.CloseListing(ctx, listing.ID, seller); err != nil {
		t.Fatalf("first close: %v", err)
	}

	// Closing again succeeds and changes nothing.
	again, err := e.CloseListing(ctx, listing.ID, seller)
	if err != nil {
		t.Fatalf("second close: %v", err)
	}
	if again.Active {
		t.Error("listing should stay closed")
	}

	var winners int
	if err := db.QueryRow("SELECT COUNT(*) FROM bids WHERE listing_id = $1 AND winner", listing.ID).Scan(&winners); err != nil {
		t.Fatalf("count winners: %v", err)
	}
	if winners != 1 {
		t.Errorf("winner rows after re-close: got %d, want 1", winners)
	}
}

func TestCloseListingWithoutBids(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)

	closed, err := e.CloseListing(context.Background(), listing.ID, seller)
	if err != nil {
		t.Fatalf("CloseListing: %v", err)
	}
	if closed.Active {
		t.Error("closed listing should be inactive")
	}

	winner, err := e.Winner(listing.ID)
	if err != nil {
		t.Fatalf("Winner: %v", err)
	}
	if winner != nil {
		t.Errorf("no-bid close: got winner %v, want none", winner)
	}
}

func TestCloseListingNotFound(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")

	if _, err := e.CloseListing(context.Background(), uuid.New(), seller); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("got %v, want ErrListingNotFound", err)
	}
}
