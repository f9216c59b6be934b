package auth

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quill/internal/domain"
)

func newTestTokenManager(t *testing.T, secret string) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(secret, slog.New(slog.NewTextHandler(os.Stdout, nil)))
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return m
}

func TestNewTokenManager_RejectsEmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", slog.Default()); err == nil {
		t.Fatal("empty secret accepted")
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestTokenManager(t, "test-secret")

	token, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("user ID = %d, want 42", userID)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m := newTestTokenManager(t, "test-secret")

	if _, err := m.Verify("not a token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("garbage token = %v, want ErrUnauthorized", err)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenManager(t, "secret-a")
	verifier := newTestTokenManager(t, "secret-b")

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("cross-secret token = %v, want ErrUnauthorized", err)
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	m := newTestTokenManager(t, "test-secret")

	past := time.Now().Add(-time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expired token = %v, want ErrUnauthorized", err)
	}
}

func TestVerify_RejectsUnsignedAlgorithm(t *testing.T) {
	m := newTestTokenManager(t, "test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("alg=none token = %v, want ErrUnauthorized", err)
	}
}

func TestVerify_RejectsNonNumericSubject(t *testing.T) {
	m := newTestTokenManager(t, "test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("non-numeric subject = %v, want ErrUnauthorized", err)
	}
}
