package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
	"quill/internal/domain/services"
)

// accessService implements the AccessService interface. Granting or editing
// someone's access is itself an edit-level operation on the post, so both
// paths authorize the actor first, inside the same transaction as the
// mutation.
type accessService struct {
	accessRepo repositories.AccessRepository
	authorizer services.Authorizer
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewAccessService creates a new access grant service.
func NewAccessService(
	accessRepo repositories.AccessRepository,
	authorizer services.Authorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.AccessService {
	return &accessService{
		accessRepo: accessRepo,
		authorizer: authorizer,
		txManager:  txManager,
		logger:     logger,
	}
}

// Grant creates a new grant for (targetUserID, postID). A concurrent or
// repeated grant on the same pair surfaces as ErrConflict from the store's
// compound key; callers recover by retrying as Edit.
func (s *accessService) Grant(ctx context.Context, actorID, targetUserID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error) {
	grant := &models.AccessGrant{
		UserID: targetUserID,
		PostID: postID,
		Level:  level,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.authorizer.Authorize(ctx, actorID, postID, models.OpEdit); err != nil {
			return err
		}
		return s.accessRepo.Create(ctx, grant)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("access granted",
		"post_id", postID,
		"user_id", targetUserID,
		"level", string(level),
		"granted_by", actorID,
	)

	return grant, nil
}

// Edit changes the level of an existing grant in place.
func (s *accessService) Edit(ctx context.Context, actorID, targetUserID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error) {
	var grant *models.AccessGrant

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.authorizer.Authorize(ctx, actorID, postID, models.OpEdit); err != nil {
			return err
		}

		updated, err := s.accessRepo.UpdateLevel(ctx, targetUserID, postID, level)
		if err != nil {
			return err
		}
		grant = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("access edited",
		"post_id", postID,
		"user_id", targetUserID,
		"level", string(level),
		"edited_by", actorID,
	)

	return grant, nil
}
