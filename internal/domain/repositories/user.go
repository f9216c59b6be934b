package repositories

import (
	"context"

	"quill/internal/domain/models"
)

// UserRepository defines data access operations for users.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID.
	// Returns ErrConflict if the name is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByName retrieves a user by unique name. Returns ErrNotFound if absent.
	GetByName(ctx context.Context, name string) (*models.User, error)

	// UpdatePassword replaces the stored credential hash.
	UpdatePassword(ctx context.Context, id int64, hash string) error
}
