// Package entity defines the domain model for the uploads feature.
package entity

// StoredImage references an uploaded image after it has been written to a
// storage backend.
type StoredImage struct {
	Key string // backend object key / filename
	URL string // reference usable by clients
}
