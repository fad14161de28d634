package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"microblog/internal/feature/posts/domain/entity"
)

// mockPostRepository is a mock implementation of the decorated repository.
type mockPostRepository struct {
	createFn      func(ctx context.Context, post *entity.Post) error
	findByIDFn    func(ctx context.Context, id uint) (*entity.Post, error)
	listNewestFn  func(ctx context.Context) ([]entity.Post, error)
	listByUserFn  func(ctx context.Context, userID uint) ([]entity.Post, error)
	setImageURLFn func(ctx context.Context, id uint, url string) error
}

func (m *mockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepository) ListNewest(ctx context.Context) ([]entity.Post, error) {
	if m.listNewestFn != nil {
		return m.listNewestFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByUserID(ctx context.Context, userID uint) ([]entity.Post, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPostRepository) SetImageURL(ctx context.Context, id uint, url string) error {
	if m.setImageURLFn != nil {
		return m.setImageURLFn(ctx, id, url)
	}
	return nil
}

func TestNewCachingPostRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "posts",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPostRepository(nil, tt.ttl, &mockPostRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

func TestCachingPostRepository_ListNewest_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Post{{ID: 1, UserID: 1, Title: "first"}}
	inner := &mockPostRepository{
		listNewestFn: func(ctx context.Context) ([]entity.Post, error) {
			return expected, nil
		},
	}

	repo := NewCachingPostRepository(nil, 5*time.Minute, inner, "posts")

	posts, err := repo.ListNewest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 1 {
		t.Errorf("unexpected posts: %+v", posts)
	}
}

func TestCachingPostRepository_ListNewest_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Post{{ID: 1, UserID: 1, Title: "cached"}}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("posts:timeline").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockPostRepository{
		listNewestFn: func(ctx context.Context) ([]entity.Post, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	posts, err := repo.ListNewest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(posts) != 1 || posts[0].Title != "cached" {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPostRepository_ListNewest_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Post{{ID: 2, UserID: 1, Title: "fresh"}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("posts:timeline").RedisNil()
	mock.ExpectSet("posts:timeline", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		listNewestFn: func(ctx context.Context) ([]entity.Post, error) {
			return expected, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	posts, err := repo.ListNewest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "fresh" {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPostRepository_ListNewest_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("posts:timeline").RedisNil()

	inner := &mockPostRepository{
		listNewestFn: func(ctx context.Context) ([]entity.Post, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	_, err := repo.ListNewest(context.Background())
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestCachingPostRepository_FindByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Post{ID: 3, UserID: 2, Title: "from db"}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("posts:id:3").SetVal("{not json")
	mock.ExpectDel("posts:id:3").SetVal(1)
	mock.ExpectSet("posts:id:3", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return expected, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	post, err := repo.FindByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "from db" {
		t.Errorf("unexpected post: %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPostRepository_Create_InvalidatesListings(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("posts:timeline", "posts:user:7").SetVal(2)

	inner := &mockPostRepository{}
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")

	if err := repo.Create(context.Background(), &entity.Post{UserID: 7, Title: "t", Body: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPostRepository_SetImageURL_InvalidatesPost(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("posts:id:3", "posts:timeline", "posts:user:7").SetVal(3)

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return &entity.Post{ID: id, UserID: 7}, nil
		},
	}
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")

	if err := repo.SetImageURL(context.Background(), 3, "/uploads/x.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
