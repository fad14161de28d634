package adapters

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/feature/posts/usecase"
)

// commentPostgres is the GORM implementation of the CommentRepository interface.
type commentPostgres struct {
	db *gorm.DB
}

// Compile-time check that commentPostgres implements CommentRepository.
var _ usecase.CommentRepository = (*commentPostgres)(nil)

// NewCommentPostgres creates a new commentPostgres instance.
func NewCommentPostgres(db *gorm.DB) *commentPostgres {
	return &commentPostgres{db: db}
}

// Create persists a comment.
func (r *commentPostgres) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByPostID returns a post's comments ordered by creation time descending.
func (r *commentPostgres) ListByPostID(ctx context.Context, postID uint) ([]entity.Comment, error) {
	var comments []entity.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
