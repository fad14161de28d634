// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and the public profile fields.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the public handle of the user.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:32;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Bio is an optional free-form profile text.
	Bio string `gorm:"size:500"`

	// Location is an optional profile field.
	Location string `gorm:"size:100"`

	// Birthdate is an optional profile field.
	Birthdate *time.Time

	// AvatarURL points at the stored profile picture, empty when unset.
	AvatarURL string `gorm:"size:512"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
