package dto

import (
	"time"

	"microblog/internal/feature/posts/domain/entity"
)

// PostRes is one post as rendered to clients. BodyHTML carries the
// Markdown-rendered body; Body keeps the raw source.
type PostRes struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentRes is one comment as rendered to clients.
type CommentRes struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDetailRes is the payload for GET /posts/:id.
type PostDetailRes struct {
	Post     PostRes      `json:"post"`
	Comments []CommentRes `json:"comments"`
}

// PostResFrom maps a post entity to its response shape.
func PostResFrom(p *entity.Post, bodyHTML string) PostRes {
	return PostRes{
		ID:        p.ID,
		Author:    p.Author,
		Title:     p.Title,
		Body:      p.Body,
		BodyHTML:  bodyHTML,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

// CommentResFrom maps a comment entity to its response shape.
func CommentResFrom(c *entity.Comment) CommentRes {
	return CommentRes{
		ID:        c.ID,
		Author:    c.Author,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
