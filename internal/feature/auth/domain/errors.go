// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for user account operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUsernameTaken indicates that a user with the given username already exists.
	// It is returned both by the pre-insert lookup and by the unique-constraint
	// backstop when two registrations race.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrEmailTaken indicates that a user with the given email already exists.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// It deliberately does not reveal which part of the credentials was wrong.
	ErrInvalidCredentials = errors.New("invalid identifier or password")
)
