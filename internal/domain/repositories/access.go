package repositories

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/domain/models"
)

// AccessRepository defines data access operations for per-post access
// grants. Grants are keyed by (user_id, post_id); the store's compound key
// resolves concurrent duplicate creation as ErrConflict.
type AccessRepository interface {
	// Create inserts a new grant. Returns ErrConflict if the pair already
	// has one, ErrNotFound if the user or post does not exist.
	Create(ctx context.Context, grant *models.AccessGrant) error

	// Get retrieves the grant for a (user, post) pair joined with the
	// holder's admin flag. Returns ErrNotFound if no grant exists; absence
	// is meaningful to the authorizer and distinct from a NONE grant.
	Get(ctx context.Context, userID int64, postID uuid.UUID) (*models.GrantWithHolder, error)

	// UpdateLevel changes the level of an existing grant in place.
	// Returns ErrNotFound if no grant exists for the pair.
	UpdateLevel(ctx context.Context, userID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error)
}
