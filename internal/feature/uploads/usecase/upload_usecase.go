// Package usecase implements the business logic for the uploads feature.
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"microblog/internal/feature/uploads/domain/entity"
)

const (
	// MaxImageSize is the maximum accepted upload size (10MB).
	MaxImageSize = 10 * 1024 * 1024

	// thumbnailSize is the bounding box avatars are downscaled into.
	thumbnailSize = 125
)

// allowedExtensions maps accepted file extensions to their content types.
var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// Storage abstracts the upload destination (local disk or object storage).
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Storage interface {
	// Put writes data under key and returns a URL resolvable by clients.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Moderator screens image content before it is stored.
type Moderator interface {
	// Classify reports whether the image is safe to publish.
	Classify(ctx context.Context, imageData []byte) (bool, error)
}

// uploadUsecase validates, optionally resizes and screens, and stores images.
type uploadUsecase struct {
	storage   Storage
	moderator Moderator // nil disables moderation
}

// NewUploadUsecase creates a new uploadUsecase instance.
// moderator may be nil, which disables content screening.
func NewUploadUsecase(storage Storage, moderator Moderator) *uploadUsecase {
	return &uploadUsecase{storage: storage, moderator: moderator}
}

// Save validates an uploaded image and writes it to the storage backend.
// The stored key is a random token preserving the original extension, so
// concurrent uploads of identically named files cannot collide. When
// thumbnail is set the image is downscaled to fit the avatar bounding box.
func (u *uploadUsecase) Save(ctx context.Context, originalName string, data []byte, thumbnail bool) (*entity.StoredImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, ErrUnsupportedType
	}

	if u.moderator != nil {
		safe, err := u.moderator.Classify(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("moderation check failed: %w", err)
		}
		if !safe {
			return nil, ErrImageRejected
		}
	}

	if thumbnail {
		resized, err := downscale(data, ext)
		if err != nil {
			// An upload that only pretends to be an image by extension
			// fails to decode here.
			return nil, ErrUnsupportedType
		}
		data = resized
	}

	key := uuid.NewString() + ext
	url, err := u.storage.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	return &entity.StoredImage{Key: key, URL: url}, nil
}

// downscale fits the image into the thumbnail bounding box, preserving the
// aspect ratio and the original encoding.
func downscale(data []byte, ext string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
