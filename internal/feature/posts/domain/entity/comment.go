package entity

import "time"

// Comment is text attached to exactly one post by exactly one user.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Author is the commenting user's username, resolved at read time.
	Author string `gorm:"-" json:"author,omitempty"`
}
