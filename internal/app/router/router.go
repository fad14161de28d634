// Package router declares the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "microblog/internal/feature/auth/transport/handler"
	postshandler "microblog/internal/feature/posts/transport/handler"
	profilehandler "microblog/internal/feature/profile/transport/handler"
	"microblog/internal/platform/http/handler"
	jwtmw "microblog/internal/platform/jwt"
)

// StaticMount serves a directory of uploaded files at a route. Zero value
// means nothing is mounted (the S3 backend serves files itself).
type StaticMount struct {
	Route string
	Dir   string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(auth *authhandler.AuthHandler, posts *postshandler.PostHandler,
	profile *profilehandler.ProfileHandler, uploads StaticMount) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Authentication
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)
	r.POST("/refresh", auth.Refresh)

	// Public reads
	r.GET("/posts", posts.List)
	r.GET("/posts/:id", posts.Get)
	r.GET("/profile/:username", profile.Show)

	if uploads.Route != "" && uploads.Dir != "" {
		r.Static(uploads.Route, uploads.Dir)
	}

	// Routes requiring a valid access token
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		authed.POST("/logout", auth.Logout)

		authed.POST("/posts", posts.Create)
		authed.POST("/posts/:id/comments", posts.CreateComment)
		authed.POST("/posts/:id/image", posts.AttachImage)

		authed.GET("/account", profile.Account)
		authed.PUT("/account", profile.UpdateAccount)
		authed.POST("/account/avatar", profile.UpdateAvatar)
	}

	return r
}
