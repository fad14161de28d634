// Package adapters provides storage and moderation implementations for the uploads feature.
package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"microblog/internal/feature/uploads/usecase"
)

// localStorage writes uploads to a directory on the local filesystem.
type localStorage struct {
	dir     string // destination directory, created on demand
	baseURL string // URL prefix under which dir is served, e.g. "/static/uploads"
}

// Compile-time check that localStorage implements Storage.
var _ usecase.Storage = (*localStorage)(nil)

// NewLocalStorage creates a localStorage rooted at dir, served under baseURL.
func NewLocalStorage(dir, baseURL string) *localStorage {
	return &localStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Put writes data to dir/key and returns the public URL.
func (s *localStorage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
