// Package adapters provides repository implementations for the posts feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/feature/posts/usecase"
)

// postPostgres is the GORM implementation of the PostRepository interface.
type postPostgres struct {
	db *gorm.DB
}

// Compile-time check that postPostgres implements PostRepository.
var _ usecase.PostRepository = (*postPostgres)(nil)

// NewPostPostgres creates a new postPostgres instance with the given gorm.DB connection.
func NewPostPostgres(db *gorm.DB) *postPostgres {
	return &postPostgres{db: db}
}

// Create persists a post.
func (r *postPostgres) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID retrieves a post by ID.
func (r *postPostgres) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListNewest returns all posts ordered by creation time descending.
func (r *postPostgres) ListNewest(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUserID returns one user's posts, newest first.
func (r *postPostgres) ListByUserID(ctx context.Context, userID uint) ([]entity.Post, error) {
	var posts []entity.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SetImageURL attaches an image reference to a post.
func (r *postPostgres) SetImageURL(ctx context.Context, id uint, url string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ?", id).
		Update("image_url", url)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrPostNotFound
	}
	return nil
}
