package repositories

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/domain/models"
)

// PostRepository defines data access operations for posts.
type PostRepository interface {
	// Create inserts a new post and fills in the generated ID.
	// Returns ErrConflict if the title is taken.
	Create(ctx context.Context, post *models.Post) error

	// GetByID retrieves a post by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// List retrieves post summaries ordered by newest first.
	List(ctx context.Context, page, count int) ([]models.PostSummary, error)

	// ListByAuthor retrieves summaries of every post the author owns.
	ListByAuthor(ctx context.Context, authorID int64) ([]models.PostSummary, error)

	// Update rewrites a post's title, text and visibility.
	Update(ctx context.Context, post *models.Post) error

	// Delete removes a post; its access grants cascade away with it.
	Delete(ctx context.Context, id uuid.UUID) error
}
