package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
)

// PostgresAccessRepository implements the AccessRepository interface. The
// compound primary key on (user_id, post_id) is what turns a concurrent
// duplicate grant into ErrConflict for the grant-or-edit fallback.
type PostgresAccessRepository struct {
	pool *pgxpool.Pool
}

// NewAccessRepository creates a new access grant repository.
func NewAccessRepository(config *RepositoryConfig) repositories.AccessRepository {
	return &PostgresAccessRepository{pool: config.Pool}
}

// Create inserts a new grant for a (user, post) pair.
func (r *PostgresAccessRepository) Create(ctx context.Context, grant *models.AccessGrant) error {
	query := `
		INSERT INTO post_access (user_id, post_id, level)
		VALUES ($1, $2, $3)
	`

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, grant.UserID, grant.PostID, string(grant.Level))
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("grant for user %d on post %s: %w", grant.UserID, grant.PostID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %d or post %s: %w", grant.UserID, grant.PostID, domain.ErrNotFound)
		}
		return fmt.Errorf("create grant: %w", err)
	}

	return nil
}

// Get retrieves the grant for a pair joined with the holder's admin flag.
// Absence comes back as ErrNotFound; the authorizer treats it as a distinct
// state, not as a NONE grant.
func (r *PostgresAccessRepository) Get(ctx context.Context, userID int64, postID uuid.UUID) (*models.GrantWithHolder, error) {
	query := `
		SELECT g.user_id, g.post_id, g.level, u.is_admin
		FROM post_access g
		JOIN users u ON u.id = g.user_id
		WHERE g.user_id = $1 AND g.post_id = $2
	`

	var grant models.GrantWithHolder
	var level string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID, postID).Scan(
		&grant.UserID,
		&grant.PostID,
		&level,
		&grant.HolderIsAdmin,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("grant for user %d on post %s: %w", userID, postID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}

	grant.Level = models.AccessLevel(level)
	return &grant, nil
}

// UpdateLevel changes the level of an existing grant in place.
func (r *PostgresAccessRepository) UpdateLevel(ctx context.Context, userID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error) {
	query := `
		UPDATE post_access
		SET level = $1
		WHERE user_id = $2 AND post_id = $3
		RETURNING user_id, post_id, level
	`

	var grant models.AccessGrant
	var stored string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, string(level), userID, postID).Scan(
		&grant.UserID,
		&grant.PostID,
		&stored,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("grant for user %d on post %s: %w", userID, postID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update grant: %w", err)
	}

	grant.Level = models.AccessLevel(stored)
	return &grant, nil
}
