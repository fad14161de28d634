// Package usecase implements the business logic for the profile feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"microblog/internal/feature/auth/domain"
	authentity "microblog/internal/feature/auth/domain/entity"
	postsentity "microblog/internal/feature/posts/domain/entity"
)

// UserRepository abstracts user persistence for profile operations.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// FindByUsername retrieves a user by username, or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)

	// FindByEmail retrieves a user by email, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*authentity.User, error)

	// FindByID retrieves a user by ID, or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*authentity.User, error)

	// Update persists changed user fields. Duplicate username or email
	// surfaces as domain.ErrUsernameTaken / domain.ErrEmailTaken.
	Update(ctx context.Context, user *authentity.User) error
}

// PostLister exposes the slice of the posts feature the public profile needs.
type PostLister interface {
	ListByUserID(ctx context.Context, userID uint) ([]postsentity.Post, error)
}

// UpdateInput carries the editable account fields.
type UpdateInput struct {
	Username  string
	Email     string
	Bio       string
	Location  string
	Birthdate *time.Time
}

// profileUsecase implements profile viewing and account management.
type profileUsecase struct {
	users UserRepository
	posts PostLister
}

// NewProfileUsecase creates a new profileUsecase instance.
func NewProfileUsecase(users UserRepository, posts PostLister) *profileUsecase {
	return &profileUsecase{users: users, posts: posts}
}

// Profile returns the public view of a user: profile fields plus their
// posts, newest first.
func (u *profileUsecase) Profile(ctx context.Context, username string) (*authentity.User, []postsentity.Post, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := u.posts.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	for i := range posts {
		posts[i].Author = user.Username
	}
	return user, posts, nil
}

// Account returns the authenticated user's own record.
func (u *profileUsecase) Account(ctx context.Context, userID uint) (*authentity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateAccount applies profile edits. Uniqueness is re-checked only for a
// changed username or email; the database constraint stays the authority
// when edits race.
func (u *profileUsecase) UpdateAccount(ctx context.Context, userID uint, in UpdateInput) (*authentity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != user.Username {
		if _, err := u.users.FindByUsername(ctx, in.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Username = in.Username
	}
	if in.Email != user.Email {
		if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}

	user.Bio = in.Bio
	user.Location = in.Location
	user.Birthdate = in.Birthdate

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar stores the uploaded avatar's URL on the user record.
func (u *profileUsecase) UpdateAvatar(ctx context.Context, userID uint, url string) (*authentity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
