package services

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/domain/models"
)

// AccessService mutates per-post access grants. Both operations require the
// actor to hold edit authority on the post (owner, read-write grant or
// admin); each authorize-then-mutate sequence runs in one transaction.
type AccessService interface {
	// Grant creates a new grant for (targetUserID, postID). Returns
	// ErrConflict if a grant already exists for the pair; that conflict is
	// the boundary's cue to retry as Edit.
	Grant(ctx context.Context, actorID, targetUserID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error)

	// Edit changes the level of an existing grant in place. Returns
	// ErrNotFound if the pair has no grant.
	Edit(ctx context.Context, actorID, targetUserID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error)
}
