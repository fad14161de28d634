// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"microblog/internal/feature/posts/domain/entity"
	"microblog/internal/feature/posts/usecase"
)

// CachingPostRepository decorates a PostRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies the repository interface.
var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "posts".
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a post and invalidates the listing cache entries.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail the write if cache invalidation fails
	_ = c.rdb.Del(ctx, c.timelineKey(), c.userKey(post.UserID)).Err()
	return nil
}

// FindByID retrieves a post, checking cache first then falling back to the database.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.postKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Post
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// ListNewest retrieves the timeline, checking cache first then falling back
// to the database.
func (c *CachingPostRepository) ListNewest(ctx context.Context) ([]entity.Post, error) {
	return c.cachedList(ctx, c.timelineKey(), func() ([]entity.Post, error) {
		return c.inner.ListNewest(ctx)
	})
}

// ListByUserID retrieves one user's posts, checking cache first then falling
// back to the database.
func (c *CachingPostRepository) ListByUserID(ctx context.Context, userID uint) ([]entity.Post, error) {
	return c.cachedList(ctx, c.userKey(userID), func() ([]entity.Post, error) {
		return c.inner.ListByUserID(ctx, userID)
	})
}

// SetImageURL updates a post's image and invalidates every cache entry that
// could render it.
func (c *CachingPostRepository) SetImageURL(ctx context.Context, id uint, url string) error {
	if err := c.inner.SetImageURL(ctx, id, url); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	keys := []string{c.postKey(id), c.timelineKey()}
	if post, err := c.inner.FindByID(ctx, id); err == nil {
		keys = append(keys, c.userKey(post.UserID))
	}
	_ = c.rdb.Del(ctx, keys...).Err()
	return nil
}

// cachedList is the shared read path for the list queries.
func (c *CachingPostRepository) cachedList(ctx context.Context, key string, load func() ([]entity.Post, error)) ([]entity.Post, error) {
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Post
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingPostRepository) timelineKey() string {
	return c.namespace + ":timeline"
}

func (c *CachingPostRepository) postKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingPostRepository) userKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}
