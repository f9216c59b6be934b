package models

// User is an authenticated identity. Admins bypass per-post level checks
// whenever they hold an explicit grant on the post.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Password string `json:"-" db:"password"`
	IsAdmin  bool   `json:"is_admin" db:"is_admin"`
}
