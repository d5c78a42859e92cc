package auction

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// comment builds a flat comment fixture for tree tests.
func comment(id uuid.UUID, parent *uuid.UUID, body string) models.Comment {
	return models.Comment{ID: id, ParentID: parent, Body: body}
}

func TestBuildCommentTree(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	aReply1 := uuid.New()
	aReply2 := uuid.New()
	nested := uuid.New()

	// Input is newest first, as the store delivers it.
	flat := []models.Comment{
		comment(b, nil, "second topic"),
		comment(nested, &aReply1, "nested reply"),
		comment(aReply2, &a, "newer reply"),
		comment(aReply1, &a, "older reply"),
		comment(a, nil, "first topic"),
	}

	roots := BuildCommentTree(flat)

	if len(roots) != 2 {
		t.Fatalf("roots: got %d, want 2", len(roots))
	}
	if roots[0].ID != b || roots[1].ID != a {
		t.Error("top-level order should follow input order")
	}

	first := roots[1]
	if len(first.Replies) != 2 {
		t.Fatalf("replies under first topic: got %d, want 2", len(first.Replies))
	}
	if first.Replies[0].ID != aReply2 || first.Replies[1].ID != aReply1 {
		t.Error("reply order should follow input order")
	}
	if len(first.Replies[1].Replies) != 1 || first.Replies[1].Replies[0].ID != nested {
		t.Error("nested reply should hang under its parent")
	}
	if len(roots[0].Replies) != 0 {
		t.Errorf("second topic replies: got %d, want 0", len(roots[0].Replies))
	}
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	roots := BuildCommentTree(nil)
	if len(roots) != 0 {
		t.Errorf("got %d roots from empty input, want 0", len(roots))
	}
}

func TestBuildCommentTreeOrphanDropped(t *testing.T) {
	missing := uuid.New()
	flat := []models.Comment{
		comment(uuid.New(), &missing, "orphan"),
		comment(uuid.New(), nil, "topic"),
	}

	roots := BuildCommentTree(flat)

	if len(roots) != 1 {
		t.Fatalf("roots: got %d, want 1", len(roots))
	}
	if roots[0].Body != "topic" {
		t.Errorf("surviving root: got %q, want %q", roots[0].Body, "topic")
	}
}

func TestBuildCommentTreeRepliesNeverNil(t *testing.T) {
	roots := BuildCommentTree([]models.Comment{comment(uuid.New(), nil, "leaf")})
	if roots[0].Replies == nil {
		t.Error("Replies should serialize as [] rather than null")
	}
}

func TestPostCommentValidation(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	author := testUser(t, db, "author")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)
	other := testListing(t, e, seller, category, 100)

	t.Run("empty body", func(t *testing.T) {
		if _, err := e.PostComment(listing.ID, author, "   ", nil); !errors.Is(err, ErrMissingField) {
			t.Errorf("got %v, want ErrMissingField", err)
		}
	})

	t.Run("body too long", func(t *testing.T) {
		body := strings.Repeat("x", models.MaxCommentLen+1)
		if _, err := e.PostComment(listing.ID, author, body, nil); !errors.Is(err, ErrCommentTooLong) {
			t.Errorf("got %v, want ErrCommentTooLong", err)
		}
	})

	t.Run("body at limit", func(t *testing.T) {
		body := strings.Repeat("x", models.MaxCommentLen)
		if _, err := e.PostComment(listing.ID, author, body, nil); err != nil {
			t.Errorf("got %v, want success", err)
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		missing := uuid.New()
		if _, err := e.PostComment(listing.ID, author, "hello?", &missing); !errors.Is(err, ErrParentNotFound) {
			t.Errorf("got %v, want ErrParentNotFound", err)
		}
	})

	t.Run("parent on different listing", func(t *testing.T) {
		parent, err := e.PostComment(other.ID, author, "elsewhere", nil)
		if err != nil {
			t.Fatalf("parent comment: %v", err)
		}
		if _, err := e.PostComment(listing.ID, author, "cross reply", &parent.ID); !errors.Is(err, ErrParentNotFound) {
			t.Errorf("got %v, want ErrParentNotFound", err)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		if _, err := e.PostComment(uuid.New(), author, "hello", nil); !errors.Is(err, ErrListingNotFound) {
			t.Errorf("got %v, want ErrListingNotFound", err)
		}
	})
}

func TestListCommentsThreading(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	author := testUser(t, db, "author")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)

	first, err := e.PostComment(listing.ID, author, "first topic", nil)
	if err != nil {
		t.Fatalf("first comment: %v", err)
	}
	if _, err := e.PostComment(listing.ID, seller, "a reply", &first.ID); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if _, err := e.PostComment(listing.ID, author, "second topic", nil); err != nil {
		t.Fatalf("second comment: %v", err)
	}

	page, err := e.ListComments(listing.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}

	// Replies do not count as top-level comments.
	if page.Count != 2 {
		t.Errorf("count: got %d, want 2", page.Count)
	}
	if len(page.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(page.Results))
	}

	// Newest first.
	if page.Results[0].Body != "second topic" {
		t.Errorf("first result: got %q, want newest topic", page.Results[0].Body)
	}
	if len(page.Results[1].Replies) != 1 || page.Results[1].Replies[0].Body != "a reply" {
		t.Error("reply should hang under the first topic")
	}
	if page.Results[1].Replies[0].AuthorName == "" {
		t.Error("replies should carry the author's display name")
	}
}

func TestListCommentsPagination(t *testing.T) {
	db := testDB(t)
	e := testEngine(t, db)

	seller := testUser(t, db, "seller")
	author := testUser(t, db, "author")
	category := testCategory(t, db)
	listing := testListing(t, e, seller, category, 100)

	for i := 0; i < 3; i++ {
		if _, err := e.PostComment(listing.ID, author, "topic", nil); err != nil {
			t.Fatalf("comment %d: %v", i, err)
		}
	}

	page, err := e.ListComments(listing.ID, 2, 2)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if page.Count != 3 || page.NumPages != 2 {
		t.Errorf("envelope: got count %d pages %d, want 3 and 2", page.Count, page.NumPages)
	}
	if len(page.Results) != 1 {
		t.Errorf("page 2 results: got %d, want 1", len(page.Results))
	}

	// Beyond the last page is empty but well-formed.
	page, err = e.ListComments(listing.ID, 5, 2)
	if err != nil {
		t.Fatalf("ListComments past end: %v", err)
	}
	if len(page.Results) != 0 {
		t.Errorf("past-end results: got %d, want 0", len(page.Results))
	}
}
