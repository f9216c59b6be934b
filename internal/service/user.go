package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"quill/internal/auth"
	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
	"quill/internal/domain/services"
)

// userService implements the UserService interface.
type userService struct {
	userRepo   repositories.UserRepository
	postRepo   repositories.PostRepository
	authorizer services.Authorizer
	tokens     *auth.TokenManager
	adminToken string
	logger     *slog.Logger
}

// NewUserService creates a new user service. adminToken is the bootstrap
// credential required to register an admin; empty disables that path.
func NewUserService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	authorizer services.Authorizer,
	tokens *auth.TokenManager,
	adminToken string,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		authorizer: authorizer,
		tokens:     tokens,
		adminToken: adminToken,
		logger:     logger,
	}
}

// Register creates a user. Self-service registration may not set the admin
// flag unless the bootstrap admin token accompanies the request.
func (s *userService) Register(ctx context.Context, req *services.RegisterRequest, adminToken string) (*models.User, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.IsAdmin && !s.adminTokenMatches(adminToken) {
		return nil, fmt.Errorf("admin registration requires the bootstrap token: %w", domain.ErrUnauthorized)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Password: hash,
		IsAdmin:  req.IsAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"id", user.ID,
		"name", user.Name,
		"is_admin", user.IsAdmin,
	)

	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown names and
// wrong passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, name, password string) (*services.Token, error) {
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("bad credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	match, err := auth.ComparePassword(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, fmt.Errorf("bad credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "id", user.ID)

	return &services.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword rotates the actor's credential after verifying the
// current one.
func (s *userService) ChangePassword(ctx context.Context, actorID int64, current, next string) error {
	if err := validation.Validate(next, validation.Required, validation.Length(8, 128)); err != nil {
		return fmt.Errorf("%w: new password: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	match, err := auth.ComparePassword(current, user.Password)
	if err != nil {
		return err
	}
	if !match {
		return fmt.Errorf("current password mismatch: %w", domain.ErrUnauthorized)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, actorID, hash); err != nil {
		return err
	}

	s.logger.Info("password rotated", "id", actorID)
	return nil
}

// VisiblePosts lists the author's posts the actor is allowed to read.
func (s *userService) VisiblePosts(ctx context.Context, actorID, authorID int64) ([]models.PostSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.PostSummary, 0, len(posts))
	for _, post := range posts {
		if s.authorizer.CheckAccess(ctx, actorID, post.ID, models.OpRead) {
			visible = append(visible, post)
		}
	}

	return visible, nil
}

func (s *userService) adminTokenMatches(token string) bool {
	if s.adminToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.adminToken), []byte(token)) == 1
}
