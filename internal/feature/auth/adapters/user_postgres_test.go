package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"microblog/internal/feature/auth/domain"
	"microblog/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func createUser(t *testing.T, repo *userPostgres, username, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username: username,
		Email:    email,
		Password: "hashed_password",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserPostgres_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))

		user := &entity.User{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "hashed_password",
		}
		err := repo.Create(ctx, user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate username maps to ErrUsernameTaken", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))
		createUser(t, repo, "alice", "alice@example.com")

		err := repo.Create(ctx, &entity.User{
			Username: "alice",
			Email:    "other@example.com",
			Password: "password2",
		})

		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))
		createUser(t, repo, "alice", "alice@example.com")

		err := repo.Create(ctx, &entity.User{
			Username: "bob",
			Email:    "alice@example.com",
			Password: "password2",
		})

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserPostgres_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("find by username, email and id", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))
		created := createUser(t, repo, "alice", "alice@example.com")

		byName, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)

		byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))

		_, err := repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserPostgres_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("persists profile fields", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))
		user := createUser(t, repo, "alice", "alice@example.com")

		user.Bio = "hello"
		user.Location = "Tokyo"
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Bio)
		assert.Equal(t, "Tokyo", got.Location)
	})

	t.Run("update onto a taken email maps to ErrEmailTaken", func(t *testing.T) {
		repo := NewUserPostgres(setupTestDB(t))
		createUser(t, repo, "alice", "alice@example.com")
		bob := createUser(t, repo, "bob", "bob@example.com")

		bob.Email = "alice@example.com"
		err := repo.Update(ctx, bob)

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserPostgres_UsernamesByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUserPostgres(setupTestDB(t))
	alice := createUser(t, repo, "alice", "alice@example.com")
	bob := createUser(t, repo, "bob", "bob@example.com")

	names, err := repo.UsernamesByIDs(ctx, []uint{alice.ID, bob.ID, 9999})
	require.NoError(t, err)

	assert.Equal(t, map[uint]string{alice.ID: "alice", bob.ID: "bob"}, names)

	empty, err := repo.UsernamesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
