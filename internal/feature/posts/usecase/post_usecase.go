// Package usecase implements the business logic for the posts feature.
package usecase

import (
	"context"
	"strings"

	"microblog/internal/feature/posts/domain/entity"
)

// PostRepository abstracts the persistence layer for post entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PostRepository interface {
	// Create persists a new post.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID retrieves a post by ID, or ErrPostNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// ListNewest returns posts ordered by creation time descending.
	ListNewest(ctx context.Context) ([]entity.Post, error)

	// ListByUserID returns one user's posts, newest first.
	ListByUserID(ctx context.Context, userID uint) ([]entity.Post, error)

	// SetImageURL attaches an image reference to a post.
	SetImageURL(ctx context.Context, id uint, url string) error
}

// CommentRepository abstracts the persistence layer for comment entities.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByPostID returns a post's comments, newest first.
	ListByPostID(ctx context.Context, postID uint) ([]entity.Comment, error)
}

// UserDirectory resolves user IDs to usernames for display.
// It is implemented by the auth feature's user repository.
type UserDirectory interface {
	UsernamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error)
}

// postUsecase implements post and comment business logic.
type postUsecase struct {
	posts    PostRepository
	comments CommentRepository
	users    UserDirectory
}

// NewPostUsecase creates a new postUsecase instance.
func NewPostUsecase(posts PostRepository, comments CommentRepository, users UserDirectory) *postUsecase {
	return &postUsecase{posts: posts, comments: comments, users: users}
}

// CreatePost persists a new post authored by userID.
func (u *postUsecase) CreatePost(ctx context.Context, userID uint, title, body string) (*entity.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	post := &entity.Post{UserID: userID, Title: title, Body: body}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Timeline returns all posts, newest first, with author usernames resolved.
func (u *postUsecase) Timeline(ctx context.Context) ([]entity.Post, error) {
	posts, err := u.posts.ListNewest(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.fillPostAuthors(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns one post and its comments, comments newest first.
func (u *postUsecase) GetPost(ctx context.Context, id uint) (*entity.Post, []entity.Comment, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := u.comments.ListByPostID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(comments)+1)
	ids = append(ids, post.UserID)
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	names, err := u.users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	post.Author = names[post.UserID]
	for i := range comments {
		comments[i].Author = names[comments[i].UserID]
	}
	return post, comments, nil
}

// AddComment persists a comment by userID on postID.
// The post must exist; the body must be non-empty.
func (u *postUsecase) AddComment(ctx context.Context, userID, postID uint, body string) (*entity.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &entity.Comment{PostID: postID, UserID: userID, Body: body}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// AttachImage stores an image reference on a post owned by userID.
func (u *postUsecase) AttachImage(ctx context.Context, userID, postID uint, url string) error {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}
	return u.posts.SetImageURL(ctx, postID, url)
}

func (u *postUsecase) fillPostAuthors(ctx context.Context, posts []entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	names, err := u.users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Author = names[posts[i].UserID]
	}
	return nil
}
