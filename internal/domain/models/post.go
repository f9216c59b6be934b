package models

import "github.com/google/uuid"

// Post is a piece of content owned by exactly one user. Public posts are
// readable by any actor that has no explicit grant; writing always requires
// ownership, a read-write grant or the admin flag.
type Post struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Text     string    `json:"text" db:"text"`
	IsPublic bool      `json:"is_public" db:"is_public"`
	AuthorID int64     `json:"author_id" db:"author_id"`
}

// PostSummary is the listing projection of a post.
type PostSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`
}
