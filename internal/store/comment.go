package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gavel/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT id, listing_id, user_id, body, parent_id, created_at, updated_at
		FROM comments WHERE id = $1
	`, id).Scan(&c.ID, &c.ListingID, &c.UserID, &c.Body, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and returns it with the generated ID and
// the author's display name resolved.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	result := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (listing_id, user_id, body, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, listing_id, user_id, body, parent_id, created_at, updated_at
	`, c.ListingID, c.UserID, c.Body, c.ParentID).Scan(
		&result.ID, &result.ListingID, &result.UserID, &result.Body,
		&result.ParentID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}

// ListByListing returns every comment on a listing, newest first, with the
// author's name fields joined in. The caller assembles the reply tree.
func (s *CommentStore) ListByListing(listingID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.listing_id, c.user_id, c.body, c.parent_id, c.created_at, c.updated_at,
		       u.username, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.listing_id = $1
		ORDER BY c.created_at DESC
	`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var (
			c    models.Comment
			user models.User
		)
		if err := rows.Scan(
			&c.ID, &c.ListingID, &c.UserID, &c.Body, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt,
			&user.Username, &user.FirstName, &user.LastName,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.AuthorName = user.DisplayName()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
