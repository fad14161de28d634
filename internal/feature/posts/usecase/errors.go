// Package usecase implements the business logic for the posts feature.
package usecase

import "errors"

var (
	// ErrPostNotFound is returned when no post exists with the given ID.
	ErrPostNotFound = errors.New("post not found")

	// ErrEmptyTitle is returned when a post is submitted without a title.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrEmptyBody is returned when a post or comment is submitted without text.
	ErrEmptyBody = errors.New("body must not be empty")

	// ErrNotOwner is returned when a user modifies a post they do not own.
	ErrNotOwner = errors.New("post belongs to another user")
)
