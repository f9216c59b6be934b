package services

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/domain/models"
)

// CreatePostRequest represents a request to create a post.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	IsPublic bool   `json:"is_public"`
}

// UpdatePostRequest represents a partial update of a post. Nil fields are
// left unchanged.
type UpdatePostRequest struct {
	Title    *string `json:"title"`
	Text     *string `json:"text"`
	IsPublic *bool   `json:"is_public"`
}

// PostService defines business logic operations for posts. Read, update and
// delete are gated by the authorizer before any store access.
type PostService interface {
	// CreatePost creates a post owned by the actor. Creation is never
	// checked against an existing post; any authenticated actor may create.
	CreatePost(ctx context.Context, actorID int64, req *CreatePostRequest) (*models.Post, error)

	// GetPost retrieves a post after a read authorization check.
	GetPost(ctx context.Context, actorID int64, id uuid.UUID) (*models.Post, error)

	// ListPosts retrieves public listing summaries, newest first.
	ListPosts(ctx context.Context, page int) ([]models.PostSummary, error)

	// UpdatePost applies a partial update after an edit authorization check.
	UpdatePost(ctx context.Context, actorID int64, id uuid.UUID, req *UpdatePostRequest) (*models.Post, error)

	// DeletePost removes a post after a delete authorization check. Access
	// grants on the post cascade away with it.
	DeletePost(ctx context.Context, actorID int64, id uuid.UUID) error
}
