package domain

import "errors"

// Sentinel errors for the error taxonomy. Services and repositories wrap
// these with fmt.Errorf("...: %w", Err...) so callers can classify failures
// with errors.Is while keeping the contextual message.
var (
	// ErrNotFound indicates a referenced resource does not exist. It is
	// deliberately distinct from ErrForbidden: a missing post must never be
	// reported as an authorization failure.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation, e.g. creating a grant
	// for a (user, post) pair that already has one. The grant endpoint
	// recovers from it by retrying as an edit.
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates invalid input, e.g. an unknown access level
	// code. It never reaches the authorization engine.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated actor lacks the required
	// level, ownership or admin flag for the requested operation.
	ErrForbidden = errors.New("forbidden")
)
