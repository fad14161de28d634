package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"microblog/internal/app/di"
	"microblog/internal/app/router"
	authadapters "microblog/internal/feature/auth/adapters"
	authhandler "microblog/internal/feature/auth/transport/handler"
	authusecase "microblog/internal/feature/auth/usecase"
	postsadapters "microblog/internal/feature/posts/adapters"
	postshandler "microblog/internal/feature/posts/transport/handler"
	postsusecase "microblog/internal/feature/posts/usecase"
	profilehandler "microblog/internal/feature/profile/transport/handler"
	profileusecase "microblog/internal/feature/profile/usecase"
	uploadsusecase "microblog/internal/feature/uploads/usecase"
	"microblog/internal/platform/cache"
	"microblog/internal/platform/config"
	platformdb "microblog/internal/platform/db"
	jwtmw "microblog/internal/platform/jwt"
	"microblog/internal/platform/markdown"
	platformredis "microblog/internal/platform/redis"
	"microblog/internal/shared/ratelimiter"
)

const (
	accessTokenTTL = 15 * time.Minute

	// loginRateLimit caps login attempts per client IP per minute.
	loginRateLimit = 10
)

func main() {
	config.Load()
	ctx := context.Background()

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	commentRepo := postsadapters.NewCommentPostgres(db)

	// Post reads go through the Redis cache when available
	postRepo := cache.NewCachingPostRepository(rdb, 0, postsadapters.NewPostPostgres(db), "posts")

	// Upload pipeline
	storage, err := di.NewStorage(ctx)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	moderator := di.NewModerator(ctx)

	// Usecase
	tokenGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), accessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen, accessTokenTTL)
	postsUC := postsusecase.NewPostUsecase(postRepo, commentRepo, userRepo)
	profileUC := profileusecase.NewProfileUsecase(userRepo, postRepo)
	uploadUC := uploadsusecase.NewUploadUsecase(storage, moderator)

	// Handler
	renderer := markdown.NewRenderer()
	loginLimiter := ratelimiter.NewLimiter(loginRateLimit, time.Minute)
	authH := authhandler.NewAuthHandler(authUC, loginLimiter)
	postsH := postshandler.NewPostHandler(postsUC, uploadUC, renderer)
	profileH := profilehandler.NewProfileHandler(profileUC, uploadUC, renderer)

	var uploadsMount router.StaticMount
	if route, dir, ok := di.UploadStaticMount(); ok {
		uploadsMount = router.StaticMount{Route: route, Dir: dir}
	}

	r := router.NewRouter(authH, postsH, profileH, uploadsMount)

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
