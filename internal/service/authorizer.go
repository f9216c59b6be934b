package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
	"quill/internal/domain/services"
)

// authorizer implements the Authorizer interface. The decision is computed
// fresh from the stores on every call; there is no grant cache, so staleness
// is bounded by the surrounding transaction.
type authorizer struct {
	postRepo   repositories.PostRepository
	accessRepo repositories.AccessRepository
	logger     *slog.Logger
}

// NewAuthorizer creates the post access authorizer.
func NewAuthorizer(
	postRepo repositories.PostRepository,
	accessRepo repositories.AccessRepository,
	logger *slog.Logger,
) services.Authorizer {
	return &authorizer{
		postRepo:   postRepo,
		accessRepo: accessRepo,
		logger:     logger,
	}
}

// Authorize decides whether the actor may perform op on the post.
//
// Once a grant exists it is the authority: an explicit NONE grant denies
// even a public read, which is how a specific user gets locked out of an
// otherwise public post. The public-read rule is only the fallback for
// grant absence. Ownership is checked before either branch, so a stray
// grant row for the owner can never lock the owner out of their own post.
func (a *authorizer) Authorize(ctx context.Context, actorID int64, postID uuid.UUID, op models.Operation) error {
	// Posts are created by their future owner; there is nothing to check
	// against.
	if op == models.OpCreate {
		return nil
	}

	post, err := a.postRepo.GetByID(ctx, postID)
	if err != nil {
		// A missing post propagates as not-found, never as a denial.
		return err
	}

	if post.AuthorID == actorID {
		return nil
	}

	grant, err := a.accessRepo.Get(ctx, actorID, postID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("load grant: %w", err)
		}

		// No grant: fall through to the public-read default.
		if op == models.OpRead && post.IsPublic {
			return nil
		}
		return a.deny(actorID, postID, op)
	}

	// Admins bypass the level comparison entirely.
	if grant.HolderIsAdmin {
		return nil
	}

	if op.AllowedFor(grant.Level) {
		return nil
	}
	return a.deny(actorID, postID, op)
}

// CheckAccess collapses Authorize to a boolean for listing filters.
func (a *authorizer) CheckAccess(ctx context.Context, actorID int64, postID uuid.UUID, op models.Operation) bool {
	return a.Authorize(ctx, actorID, postID, op) == nil
}

func (a *authorizer) deny(actorID int64, postID uuid.UUID, op models.Operation) error {
	a.logger.Debug("access denied",
		"actor_id", actorID,
		"post_id", postID,
		"operation", op.String(),
	)
	return fmt.Errorf("%s post %s: %w", op, postID, domain.ErrForbidden)
}
