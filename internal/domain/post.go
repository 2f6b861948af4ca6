package domain

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

func (s PostStatus) IsValid() bool {
	return s == PostDraft || s == PostPublished
}

type Post struct {
	ID        uuid.UUID  `json:"id" db:"post_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Status    PostStatus `json:"status" db:"status"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// IsPublic reports whether anonymous visitors may see the post and comment on it.
func (p *Post) IsPublic() bool {
	return p.Status == PostPublished
}

type CreatePostInput struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Status  PostStatus `json:"status"`
}

type UpdatePostInput struct {
	Title   *string     `json:"title,omitempty"`
	Content *string     `json:"content,omitempty"`
	Status  *PostStatus `json:"status,omitempty"`
}
