// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"microblog/internal/feature/auth/domain"
	"microblog/internal/feature/auth/domain/entity"
	"microblog/internal/platform/password"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// maxSessionsPerUser caps the number of concurrently active refresh
	// sessions; the oldest one is evicted when the cap is reached.
	maxSessionsPerUser = 5

	// sessionTTL is the refresh session lifetime for a normal login.
	sessionTTL = 24 * time.Hour

	// rememberSessionTTL is the refresh session lifetime when the client
	// asked to be remembered.
	rememberSessionTTL = 30 * 24 * time.Hour
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Duplicate username or email surfaces as
	// domain.ErrUsernameTaken / domain.ErrEmailTaken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the given email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a user matching the given username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user matching the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator issues signed access tokens.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/jwt).
type TokenGenerator interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID uint, username string) (string, error)
}

// LoginInput carries everything the login flow needs from the transport layer.
type LoginInput struct {
	Identifier string // email or username; "@" selects the email lookup
	Password   string
	Remember   bool
	UserAgent  string
	IPAddress  string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users     UserRepository
	sessions  SessionRepository
	tokens    TokenGenerator
	accessTTL time.Duration
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, accessTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		accessTTL: accessTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup registers a new user with a hashed password.
// Username and email uniqueness is pre-checked via lookups; the database
// unique constraints remain the authority when two registrations race, and
// the adapter reports that conflict as the same domain error.
func (u *authUsecase) Signup(ctx context.Context, username, email, pw, confirm string) error {
	if err := validatePassword(pw); err != nil {
		return err
	}
	if pw != confirm {
		return ErrPasswordMismatch
	}

	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hashed, err := password.Hash(pw)
	if err != nil {
		return err
	}
	user := &entity.User{Username: username, Email: email, Password: hashed}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and establishes a refresh session.
// A bcrypt comparison runs even when the user does not exist, so response
// timing does not reveal whether the identifier was known.
func (u *authUsecase) Login(ctx context.Context, in LoginInput) (*TokenPair, error) {
	var user *entity.User
	var err error
	if strings.Contains(in.Identifier, "@") {
		user, err = u.users.FindByEmail(ctx, in.Identifier)
	} else {
		user, err = u.users.FindByUsername(ctx, in.Identifier)
	}

	stored := password.DummyHash
	if err == nil {
		stored = user.Password
	}
	ok := password.Verify(stored, in.Password)

	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	ttl := sessionTTL
	if in.Remember {
		ttl = rememberSessionTTL
	}
	session, err := u.openSession(ctx, user.ID, in.UserAgent, in.IPAddress, time.Now().Add(ttl))
	if err != nil {
		return nil, err
	}

	access, err := u.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: session.ID,
		ExpiresIn:    int64(u.accessTTL.Seconds()),
	}, nil
}

// Refresh rotates a refresh session: the presented session is revoked and a
// new one is issued with the same expiry window, alongside a fresh access token.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}
	next, err := u.openSession(ctx, user.ID, userAgent, ipAddress, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	access, err := u.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: next.ID,
		ExpiresIn:    int64(u.accessTTL.Seconds()),
	}, nil
}

// Logout revokes the presented refresh session.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}

// openSession creates a session record, evicting the oldest one when the
// per-user cap is reached.
func (u *authUsecase) openSession(ctx context.Context, userID uint, userAgent, ipAddress string, expiresAt time.Time) (*entity.Session, error) {
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return nil, err
		}
	}

	token, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	session := &entity.Session{
		ID:        token,
		UserID:    userID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// newRefreshToken returns a 64-character hex token from a CSPRNG.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
