// Package entity defines the domain entities for the posts feature.
package entity

import "time"

// Post is a content record owned by exactly one user.
type Post struct {
	// ID is the unique identifier for the post.
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID references the authoring user.
	UserID uint `gorm:"index;not null" json:"user_id"`

	// Title is the post headline.
	Title string `gorm:"size:200;not null" json:"title"`

	// Body is the post content, stored as Markdown.
	Body string `gorm:"type:text;not null" json:"body"`

	// ImageURL references an attached image, empty when none.
	ImageURL string `gorm:"size:512" json:"image_url,omitempty"`

	// CreatedAt orders the timeline (newest first).
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Author is the authoring user's username, resolved at read time.
	// It is not stored on the posts table.
	Author string `gorm:"-" json:"author,omitempty"`
}
