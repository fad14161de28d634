// Package handler provides the HTTP handlers for the posts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"microblog/internal/api"
	postsentity "microblog/internal/feature/posts/domain/entity"
	"microblog/internal/feature/posts/transport/http/dto"
	"microblog/internal/feature/posts/usecase"
	uploadsentity "microblog/internal/feature/uploads/domain/entity"
	uploadshandler "microblog/internal/feature/uploads/transport/handler"
	jwtmw "microblog/internal/platform/jwt"
	"microblog/internal/platform/markdown"
)

// PostUsecase defines the post operations consumed by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PostUsecase interface {
	CreatePost(ctx context.Context, userID uint, title, body string) (*postsentity.Post, error)
	Timeline(ctx context.Context) ([]postsentity.Post, error)
	GetPost(ctx context.Context, id uint) (*postsentity.Post, []postsentity.Comment, error)
	AddComment(ctx context.Context, userID, postID uint, body string) (*postsentity.Comment, error)
	AttachImage(ctx context.Context, userID, postID uint, url string) error
}

// ImageStore saves an uploaded image and returns its stored reference.
type ImageStore interface {
	Save(ctx context.Context, originalName string, data []byte, thumbnail bool) (*uploadsentity.StoredImage, error)
}

// PostHandler handles HTTP requests for posts and comments.
type PostHandler struct {
	posts    PostUsecase
	images   ImageStore
	renderer *markdown.Renderer
}

// NewPostHandler creates a new PostHandler instance.
func NewPostHandler(posts PostUsecase, images ImageStore, renderer *markdown.Renderer) *PostHandler {
	return &PostHandler{posts: posts, images: images, renderer: renderer}
}

// List handles GET /posts: the public timeline, newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.Timeline(c.Request.Context())
	if err != nil {
		slog.Error("timeline query failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load posts"})
		return
	}

	out := make([]dto.PostRes, 0, len(posts))
	for i := range posts {
		out = append(out, dto.PostResFrom(&posts[i], h.renderer.Render(posts[i].Body)))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /posts/:id: one post plus its comments, newest first.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, comments, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
			return
		}
		slog.Error("post lookup failed", "error", err, "post_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load post"})
		return
	}

	res := dto.PostDetailRes{
		Post:     dto.PostResFrom(post, h.renderer.Render(post.Body)),
		Comments: make([]dto.CommentRes, 0, len(comments)),
	}
	for i := range comments {
		res.Comments = append(res.Comments, dto.CommentResFrom(&comments[i]))
	}
	c.JSON(http.StatusOK, res)
}

// Create handles POST /posts (authenticated).
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("post validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "title and body are required"})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), userID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyTitle) || errors.Is(err, usecase.ErrEmptyBody) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("post creation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create post"})
		return
	}

	slog.Info("post created", "post_id", post.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.PostResFrom(post, h.renderer.Render(post.Body)))
}

// CreateComment handles POST /posts/:id/comments (authenticated).
func (h *PostHandler) CreateComment(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "body is required"})
		return
	}

	comment, err := h.posts.AddComment(c.Request.Context(), userID, postID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPostNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
		case errors.Is(err, usecase.ErrEmptyBody):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("comment creation failed", "error", err, "post_id", postID, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create comment"})
		}
		return
	}

	slog.Info("comment created", "comment_id", comment.ID, "post_id", postID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.CommentResFrom(comment))
}

// AttachImage handles POST /posts/:id/image (authenticated, multipart).
// The file field is named "image"; only the post owner may attach.
func (h *PostHandler) AttachImage(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	name, data, ok := uploadshandler.ReadImageFile(c)
	if !ok {
		return
	}

	stored, err := h.images.Save(c.Request.Context(), name, data, false)
	if err != nil {
		uploadshandler.WriteError(c, err)
		return
	}

	if err := h.posts.AttachImage(c.Request.Context(), userID, postID, stored.URL); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPostNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
		case errors.Is(err, usecase.ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "post belongs to another user"})
		default:
			slog.Error("image attach failed", "error", err, "post_id", postID, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "upload failed"})
		}
		return
	}

	slog.Info("image attached", "post_id", postID, "user_id", userID, "key", stored.Key)
	c.JSON(http.StatusOK, gin.H{"image_url": stored.URL})
}

// pathID parses the :id route parameter, writing a 400 on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post id"})
		return 0, false
	}
	return uint(id), true
}
