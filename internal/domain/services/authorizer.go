package services

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/domain/models"
)

// Authorizer is the single entry point for post access decisions. Every
// handler routes through it; ownership and admin checks are never
// re-implemented at call sites.
type Authorizer interface {
	// Authorize decides whether the actor may perform op on the post.
	// Returns nil to allow, ErrForbidden to deny, and ErrNotFound when the
	// post does not exist (propagated, not an authorization failure).
	Authorize(ctx context.Context, actorID int64, postID uuid.UUID, op models.Operation) error

	// CheckAccess is Authorize collapsed to a boolean, for filtering
	// listings. Lookup failures count as denied.
	CheckAccess(ctx context.Context, actorID int64, postID uuid.UUID, op models.Operation) bool
}
