// Package handler provides shared HTTP plumbing for image uploads.
package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/api"
	"microblog/internal/feature/uploads/usecase"
)

// ReadImageFile extracts the multipart "image" field, writing the error
// response itself on failure.
func ReadImageFile(c *gin.Context) (string, []byte, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("image file missing", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return "", nil, false
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("image open failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return "", nil, false
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("image close failed", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("image read failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return "", nil, false
	}
	return file.Filename, data, true
}

// WriteError maps upload usecase errors onto HTTP responses.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unsupported file type"})
	case errors.Is(err, usecase.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image is too large"})
	case errors.Is(err, usecase.ErrImageRejected):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "image was rejected"})
	default:
		slog.Error("image store failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "upload failed"})
	}
}
