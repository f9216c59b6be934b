package models

import (
	"fmt"

	"github.com/google/uuid"

	"quill/internal/domain"
)

// AccessLevel is the capability a user holds on a specific post. It travels
// over the wire as a single-character code.
type AccessLevel string

const (
	LevelNone      AccessLevel = "n"
	LevelRead      AccessLevel = "r"
	LevelReadWrite AccessLevel = "w"
)

// ParseAccessLevel converts a wire code into an AccessLevel. Anything other
// than "n", "r" or "w" is a validation error, never an authorization
// decision.
func ParseAccessLevel(code string) (AccessLevel, error) {
	switch AccessLevel(code) {
	case LevelNone, LevelRead, LevelReadWrite:
		return AccessLevel(code), nil
	default:
		return "", fmt.Errorf("%w: unknown access level code %q", domain.ErrValidation, code)
	}
}

// Operation is a closed set of actions an actor can request on a post.
type Operation int

const (
	OpCreate Operation = iota
	OpRead
	OpEdit
	OpDelete
)

// AllowedFor reports whether a grant of the given level permits the
// operation. This is the authoritative operation/level comparison:
//
//	READ         -> READ, READ_WRITE
//	EDIT, DELETE -> READ_WRITE
//
// An explicit NONE grant permits nothing, which is how a specific user can
// be locked out of an otherwise public post. Ownership and the admin flag
// are handled upstream by the authorizer, not here.
func (op Operation) AllowedFor(level AccessLevel) bool {
	switch op {
	case OpRead:
		return level == LevelRead || level == LevelReadWrite
	case OpEdit, OpDelete:
		return level == LevelReadWrite
	default:
		return false
	}
}

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpRead:
		return "read"
	case OpEdit:
		return "edit"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// AccessGrant is a stored (user, post, level) authorization record. At most
// one grant exists per pair; the compound primary key enforces that.
type AccessGrant struct {
	UserID int64       `json:"user_id" db:"user_id"`
	PostID uuid.UUID   `json:"post_id" db:"post_id"`
	Level  AccessLevel `json:"level" db:"level"`
}

// GrantWithHolder is the authorizer's read model: a grant joined with the
// admin flag of the user holding it.
type GrantWithHolder struct {
	AccessGrant
	HolderIsAdmin bool `json:"-"`
}
