// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"microblog/internal/api"
	"microblog/internal/feature/auth/domain"
	"microblog/internal/feature/auth/transport/http/dto"
	"microblog/internal/feature/auth/usecase"
	"microblog/internal/shared/ratelimiter"
)

// AuthUsecase defines the authentication operations consumed by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user with the given credentials.
	Signup(ctx context.Context, username, email, password, confirm string) error
	// Login authenticates a user and returns an access/refresh token pair.
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.TokenPair, error)
	// Refresh rotates a refresh session and returns a fresh token pair.
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
	// Logout revokes the presented refresh session.
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth    AuthUsecase
	limiter *ratelimiter.Limiter
}

// NewAuthHandler creates a new AuthHandler instance.
// limiter throttles login attempts per client IP and may be nil in tests.
func NewAuthHandler(auth AuthUsecase, limiter *ratelimiter.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// Signup handles the user registration endpoint.
// - binds the request JSON to SignupReq; field errors return 400
// - duplicate username/email returns 409 with the offending field named
// - success returns 201
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Error: "invalid request", Fields: fieldErrors(err)})
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.PasswordConfirmation); err != nil {
		slog.Warn("signup failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusConflict, api.FieldErrorResponse{Error: err.Error(), Fields: map[string]string{"username": err.Error()}})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, api.FieldErrorResponse{Error: err.Error(), Fields: map[string]string{"email": err.Error()}})
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Error: err.Error(), Fields: map[string]string{"password_confirmation": err.Error()}})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signup failed"})
		}
		return
	}
	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login handles the user login endpoint.
// Authentication failures return a single generic message regardless of
// whether the identifier or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		slog.Warn("login rate limited", "remote_addr", c.ClientIP())
		c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many login attempts"})
		return
	}

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Error: "invalid request", Fields: fieldErrors(err)})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		Remember:   req.Remember,
		UserAgent:  c.Request.UserAgent(),
		IPAddress:  c.ClientIP(),
	})
	if err != nil {
		// Do not expose which credential was wrong.
		slog.Warn("login failed", "error", err, "identifier", req.Identifier, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid identifier or password"})
		return
	}

	slog.Info("user login successful", "identifier", req.Identifier, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Next:         sanitizeNext(c.Query("next")),
	})
}

// Refresh handles refresh-token rotation.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("refresh validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Warn("refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Logout revokes the presented refresh session.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// sanitizeNext validates a post-login redirect target. Only same-origin
// relative paths pass; anything with a scheme or host is discarded.
func sanitizeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return raw
}

// fieldErrors flattens validator errors into a field -> message map.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = "failed on the '" + fe.Tag() + "' rule"
	}
	return fields
}
