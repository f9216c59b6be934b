package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
)

// PostgresPostRepository implements the PostRepository interface.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new post repository.
func NewPostRepository(config *RepositoryConfig) repositories.PostRepository {
	return &PostgresPostRepository{pool: config.Pool}
}

// Create inserts a new post and fills in the generated ID.
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, text, is_public, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		post.Title,
		post.Text,
		post.IsPublic,
		post.AuthorID,
	).Scan(&post.ID)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("post %q: %w", post.Title, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("author %d: %w", post.AuthorID, domain.ErrNotFound)
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID.
func (r *PostgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `
		SELECT id, title, text, is_public, author_id
		FROM posts
		WHERE id = $1
	`

	var post models.Post
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Text,
		&post.IsPublic,
		&post.AuthorID,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// List retrieves post summaries ordered by newest first.
func (r *PostgresPostRepository) List(ctx context.Context, page, count int) ([]models.PostSummary, error) {
	query := `
		SELECT id, title
		FROM posts
		ORDER BY id DESC
		OFFSET $1 LIMIT $2
	`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, page*count, count)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListByAuthor retrieves summaries of every post the author owns.
func (r *PostgresPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.PostSummary, error) {
	query := `
		SELECT id, title
		FROM posts
		WHERE author_id = $1
		ORDER BY id DESC
	`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Update rewrites a post's title, text and visibility.
func (r *PostgresPostRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1, text = $2, is_public = $3
		WHERE id = $4
	`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		post.Title,
		post.Text,
		post.IsPublic,
		post.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("post title %q: %w", post.Title, domain.ErrConflict)
		}
		return fmt.Errorf("update post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", post.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a post. Grants on it cascade away via the foreign key.
func (r *PostgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM posts
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanSummaries(rows pgx.Rows) ([]models.PostSummary, error) {
	var summaries []models.PostSummary
	for rows.Next() {
		var summary models.PostSummary
		if err := rows.Scan(&summary.ID, &summary.Title); err != nil {
			return nil, fmt.Errorf("scan post summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	if summaries == nil {
		summaries = []models.PostSummary{}
	}

	return summaries, nil
}
