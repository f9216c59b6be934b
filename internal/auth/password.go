package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// HashPassword derives an argon2id hash from a plaintext credential.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// ComparePassword reports whether the plaintext credential matches the
// stored hash.
func ComparePassword(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return match, nil
}
