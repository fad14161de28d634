// Package di wires environment-dependent implementations into the usecases.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "microblog/internal/feature/auth/adapters"
	"microblog/internal/feature/auth/usecase"
	"microblog/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, refresh sessions live there and expire via key TTLs.
// Otherwise, they fall back to Postgres.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionPostgres(db)
}
