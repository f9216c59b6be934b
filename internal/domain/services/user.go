package services

import (
	"context"

	"quill/internal/domain/models"
)

// RegisterRequest represents a self-service registration. Setting IsAdmin
// requires the bootstrap admin token to accompany the request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// Token is a bearer credential issued at login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserService defines business logic operations for users.
type UserService interface {
	// Register creates a user. adminToken is the bootstrap credential from
	// the request header; it is only consulted when req.IsAdmin is set.
	Register(ctx context.Context, req *RegisterRequest, adminToken string) (*models.User, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, name, password string) (*Token, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// ChangePassword rotates the actor's credential after verifying the
	// current one.
	ChangePassword(ctx context.Context, actorID int64, current, next string) error

	// VisiblePosts lists the author's posts the actor is allowed to read.
	VisiblePosts(ctx context.Context, actorID, authorID int64) ([]models.PostSummary, error)
}
