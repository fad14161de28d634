// Package usecase implements the business logic for the uploads feature.
package usecase

import "errors"

var (
	// ErrUnsupportedType is returned for file extensions outside the whitelist.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrImageTooLarge is returned when the upload exceeds the size cap.
	ErrImageTooLarge = errors.New("image exceeds maximum size")

	// ErrImageRejected is returned when the moderation check flags the image.
	ErrImageRejected = errors.New("image rejected by moderation")

	// ErrEmptyImage is returned for zero-length uploads.
	ErrEmptyImage = errors.New("image data is empty")
)
