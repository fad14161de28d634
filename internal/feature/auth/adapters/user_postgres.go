// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"microblog/internal/feature/auth/domain"
	"microblog/internal/feature/auth/domain/entity"
	"microblog/internal/feature/auth/usecase"
	profileusecase "microblog/internal/feature/profile/usecase"
)

// userPostgres is the GORM implementation of the user repository interfaces
// consumed by the auth and profile usecases.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time checks that userPostgres satisfies the consuming usecase interfaces.
var (
	_ usecase.UserRepository        = (*userPostgres)(nil)
	_ profileusecase.UserRepository = (*userPostgres)(nil)
)

// NewUserPostgres creates a new userPostgres instance with the given gorm.DB connection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts a user. A unique-constraint violation is attributed to the
// username or email column and returned as the matching domain error, so a
// race between two registrations fails the same way a pre-check does.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// Update persists changed user fields, mapping uniqueness conflicts the same
// way Create does.
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// FindByEmail retrieves a user by email address.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername retrieves a user by username.
func (r *userPostgres) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID retrieves a user by ID.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userPostgres) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UsernamesByIDs returns a username lookup table for the given user IDs.
// Missing IDs are simply absent from the map.
func (r *userPostgres) UsernamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error) {
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	var rows []struct {
		ID       uint
		Username string
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("id", "username").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Username
	}
	return names, nil
}

// translateDuplicate maps a unique-constraint violation to the domain error
// for the offending column. Postgres reports the constraint name via
// pgconn.PgError (code 23505, unique_violation); the SQLite message form is
// also recognized because the adapter tests run against in-memory SQLite.
func translateDuplicate(err error) error {
	var detail string
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		detail = pgErr.ConstraintName
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		// e.g. "UNIQUE constraint failed: users.username"
		detail = err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		detail = err.Error()
	default:
		return err
	}

	if strings.Contains(detail, "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}
