// Package handler provides the HTTP handlers for the profile feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"microblog/internal/api"
	"microblog/internal/feature/auth/domain"
	authentity "microblog/internal/feature/auth/domain/entity"
	postsentity "microblog/internal/feature/posts/domain/entity"
	postsdto "microblog/internal/feature/posts/transport/http/dto"
	"microblog/internal/feature/profile/transport/http/dto"
	"microblog/internal/feature/profile/usecase"
	uploadsentity "microblog/internal/feature/uploads/domain/entity"
	uploadshandler "microblog/internal/feature/uploads/transport/handler"
	jwtmw "microblog/internal/platform/jwt"
	"microblog/internal/platform/markdown"
)

// ProfileUsecase defines the profile operations consumed by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ProfileUsecase interface {
	Profile(ctx context.Context, username string) (*authentity.User, []postsentity.Post, error)
	Account(ctx context.Context, userID uint) (*authentity.User, error)
	UpdateAccount(ctx context.Context, userID uint, in usecase.UpdateInput) (*authentity.User, error)
	UpdateAvatar(ctx context.Context, userID uint, url string) (*authentity.User, error)
}

// AvatarStore saves an uploaded avatar image and returns its stored reference.
type AvatarStore interface {
	Save(ctx context.Context, originalName string, data []byte, thumbnail bool) (*uploadsentity.StoredImage, error)
}

// ProfileHandler handles HTTP requests for public profiles and account settings.
type ProfileHandler struct {
	profile  ProfileUsecase
	avatars  AvatarStore
	renderer *markdown.Renderer
}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler(profile ProfileUsecase, avatars AvatarStore, renderer *markdown.Renderer) *ProfileHandler {
	return &ProfileHandler{profile: profile, avatars: avatars, renderer: renderer}
}

// Show handles GET /profile/:username: the public profile with the
// user's posts, newest first. Email and birthdate are never exposed here.
func (h *ProfileHandler) Show(c *gin.Context) {
	username := c.Param("username")

	user, posts, err := h.profile.Profile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("profile lookup failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load profile"})
		return
	}

	res := dto.ProfileRes{
		Username:  user.Username,
		Bio:       user.Bio,
		Location:  user.Location,
		AvatarURL: user.AvatarURL,
		Posts:     make([]postsdto.PostRes, 0, len(posts)),
	}
	for i := range posts {
		res.Posts = append(res.Posts, postsdto.PostResFrom(&posts[i], h.renderer.Render(posts[i].Body)))
	}
	c.JSON(http.StatusOK, res)
}

// Account handles GET /account (authenticated).
func (h *ProfileHandler) Account(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	user, err := h.profile.Account(c.Request.Context(), userID)
	if err != nil {
		slog.Error("account lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load account"})
		return
	}
	c.JSON(http.StatusOK, dto.AccountResFrom(user))
}

// UpdateAccount handles PUT /account (authenticated).
func (h *ProfileHandler) UpdateAccount(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.UpdateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("account validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid account fields"})
		return
	}

	in := usecase.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Location: req.Location,
	}
	if req.Birthdate != "" {
		// Format already validated by the binding tag.
		bd, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid birthdate"})
			return
		}
		in.Birthdate = &bd
	}

	user, err := h.profile.UpdateAccount(c.Request.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusConflict, api.FieldErrorResponse{
				Error:  "account update failed",
				Fields: map[string]string{"username": "username is already taken"},
			})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, api.FieldErrorResponse{
				Error:  "account update failed",
				Fields: map[string]string{"email": "email is already registered"},
			})
		default:
			slog.Error("account update failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update account"})
		}
		return
	}

	slog.Info("account updated", "user_id", userID)
	c.JSON(http.StatusOK, dto.AccountResFrom(user))
}

// UpdateAvatar handles POST /account/avatar (authenticated, multipart).
// The stored avatar is a 125x125 thumbnail of the uploaded image.
func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	name, data, ok := uploadshandler.ReadImageFile(c)
	if !ok {
		return
	}

	stored, err := h.avatars.Save(c.Request.Context(), name, data, true)
	if err != nil {
		uploadshandler.WriteError(c, err)
		return
	}

	user, err := h.profile.UpdateAvatar(c.Request.Context(), userID, stored.URL)
	if err != nil {
		slog.Error("avatar update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update avatar"})
		return
	}

	slog.Info("avatar updated", "user_id", userID, "key", stored.Key)
	c.JSON(http.StatusOK, dto.AccountResFrom(user))
}
