// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auction

import (
	"context"
	"testing"
)

func TestProjectGathersStats(t *testing.T) {
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
	if _, err := e.RateListing(listing.ID, alice, 4); err != nil {
		t.Fatalf("rating: %v", err)
	}
	if _, err := e.ToggleWatch(listing.ID, alice); err != nil {
		t.Fatalf("watch: %v", err)
	}

	v, err := e.Project(listing, alice)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	if v.CurrentBid != 200 || v.BidCount != 2 {
		t.Errorf("bid stats: got (%d, %d), want (200, 2)", v.CurrentBid, v.BidCount)
	}
	if v.AverageRating != 4 {
		t.Errorf("average rating: got %v, want 4", v.AverageRating)
	}
	if v.ViewerRating == nil || *v.ViewerRating != 4 {
		t.Errorf("viewer rating: got %v, want 4", v.ViewerRating)
	}
	if !v.Watching {
		t.Error("alice should be watching")
	}
	if v.IsOwner {
		t.Error("alice is not the owner")
	}
	if v.CategoryName != category.Name {
		t.Errorf("category name: got %q, want %q", v.CategoryName, category.Name)
	}
	if v.OwnerName != seller.DisplayName() {
		t.Errorf("owner name: got %q, want %q", v.OwnerName, seller.DisplayName())
	}
	if v.WinnerID != nil {
		t.Error("open listing should have no winner")
	}

	// The seller's own view carries no viewer rating or watch state.
	sv, err := e.Project(listing, seller)
	if err != nil {
		t.Fatalf("Project for seller: %v", err)
	}
	if !sv.IsOwner {
		t.Error("seller should be flagged as owner")
	}
	if sv.ViewerRating != nil || sv.Watching {
		t.Error("seller has no rating or watch state")
	}
}

func TestProjectWinnerAfterClose(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	bidder := testUser(t, db, "bidder")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)
	ctx := context.Background()

	if _, err := e.PlaceBid(ctx, listing.ID, bidder, 175); err != nil {
		t.Fatalf("bid: %v", err)
	}
	closed, err := e.CloseListing(ctx, listing.ID, seller)
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	v, err := e.Project(closed, nil)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if v.Active {
		t.Error("projection should show the listing closed")
	}
	if v.WinnerID == nil || *v.WinnerID != bidder.ID {
		t.Errorf("winner id: got %v, want %s", v.WinnerID, bidder.ID)
	}
	if v.WinnerName == nil || *v.WinnerName != bidder.DisplayName() {
		t.Errorf("winner name: got %v, want %q", v.WinnerName, bidder.DisplayName())
	}
}

func TestProjectAnonymousViewer(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)

	v, err := e.Project(listing, nil)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if v.IsOwner || v.Watching || v.ViewerRating != nil {
		t.Error("anonymous projection should carry no viewer state")
	}
	if v.CurrentBid != 100 {
		t.Errorf("current bid: got %d, want starting bid 100", v.CurrentBid)
	}
}
