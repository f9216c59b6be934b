package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
	"quill/internal/domain/services"
)

const maxTitleLength = 200

// postService implements the PostService interface.
type postService struct {
	postRepo   repositories.PostRepository
	authorizer services.Authorizer
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repositories.PostRepository,
	authorizer services.Authorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.PostService {
	return &postService{
		postRepo:   postRepo,
		authorizer: authorizer,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreatePost creates a post owned by the actor.
func (s *postService) CreatePost(ctx context.Context, actorID int64, req *services.CreatePostRequest) (*models.Post, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&req.Text, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	post := &models.Post{
		Title:    strings.TrimSpace(req.Title),
		Text:     req.Text,
		IsPublic: req.IsPublic,
		AuthorID: actorID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		"id", post.ID,
		"title", post.Title,
		"author_id", actorID,
	)

	return post, nil
}

// GetPost retrieves a post after a read authorization check.
func (s *postService) GetPost(ctx context.Context, actorID int64, id uuid.UUID) (*models.Post, error) {
	if err := s.authorizer.Authorize(ctx, actorID, id, models.OpRead); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves public listing summaries, newest first.
func (s *postService) ListPosts(ctx context.Context, page int) ([]models.PostSummary, error) {
	if page < 0 {
		page = 0
	}
	return s.postRepo.List(ctx, page, 50)
}

// UpdatePost applies a partial update. The authorization read and the write
// share one transaction so the decision and the mutation see the same
// snapshot.
func (s *postService) UpdatePost(ctx context.Context, actorID int64, id uuid.UUID, req *services.UpdatePostRequest) (*models.Post, error) {
	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required, validation.Length(1, maxTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
	}

	var post *models.Post
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.authorizer.Authorize(ctx, actorID, id, models.OpEdit); err != nil {
			return err
		}

		current, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			current.Title = strings.TrimSpace(*req.Title)
		}
		if req.Text != nil {
			current.Text = *req.Text
		}
		if req.IsPublic != nil {
			current.IsPublic = *req.IsPublic
		}

		if err := s.postRepo.Update(ctx, current); err != nil {
			return err
		}
		post = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated",
		"id", id,
		"actor_id", actorID,
	)

	return post, nil
}

// DeletePost removes a post after a delete authorization check.
func (s *postService) DeletePost(ctx context.Context, actorID int64, id uuid.UUID) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.authorizer.Authorize(ctx, actorID, id, models.OpDelete); err != nil {
			return err
		}
		return s.postRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("post deleted",
		"id", id,
		"actor_id", actorID,
	)

	return nil
}
