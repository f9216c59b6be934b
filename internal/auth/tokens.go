package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quill/internal/domain"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 30 * time.Minute

// TokenManager issues and verifies the HS256 bearer tokens that carry the
// actor's identity between requests.
type TokenManager struct {
	secret []byte
	logger *slog.Logger
}

// NewTokenManager creates a token manager from the signing secret.
func NewTokenManager(secret string, logger *slog.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("signing secret cannot be empty")
	}

	return &TokenManager{secret: []byte(secret), logger: logger}, nil
}

// Issue signs a token whose subject is the user's ID.
func (m *TokenManager) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token string and returns the user ID it was issued
// for. Any parse, signature or expiry failure comes back as ErrUnauthorized.
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		// Pin the algorithm so a crafted token cannot downgrade verification.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		m.logger.Debug("token rejected", "error", err)
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		m.logger.Debug("token subject is not a user ID", "subject", claims.Subject)
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}
