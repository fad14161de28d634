package di

import (
	"context"
	"fmt"
	"os"

	uploadsadapters "microblog/internal/feature/uploads/adapters"
	"microblog/internal/feature/uploads/usecase"
)

const (
	defaultUploadDir     = "./uploads"
	defaultUploadBaseURL = "/uploads"
)

// NewStorage selects the image storage backend. STORAGE_BACKEND=s3 uploads
// to S3 using the ambient AWS credentials; anything else stores files on
// local disk under UPLOAD_DIR, served at UPLOAD_BASE_URL.
func NewStorage(ctx context.Context) (usecase.Storage, error) {
	if os.Getenv("STORAGE_BACKEND") == "s3" {
		cfg := uploadsadapters.LoadS3Config()
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=s3 requires S3_BUCKET")
		}
		return uploadsadapters.NewS3Storage(ctx, cfg)
	}

	dir, baseURL := localUploadConfig()
	return uploadsadapters.NewLocalStorage(dir, baseURL), nil
}

// UploadStaticMount reports the route and directory to serve uploaded files
// from when the local storage backend is active. With S3 the bucket serves
// the files itself and ok is false.
func UploadStaticMount() (route, dir string, ok bool) {
	if os.Getenv("STORAGE_BACKEND") == "s3" {
		return "", "", false
	}
	dir, route = localUploadConfig()
	return route, dir, true
}

func localUploadConfig() (dir, baseURL string) {
	dir = os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = defaultUploadDir
	}
	baseURL = os.Getenv("UPLOAD_BASE_URL")
	if baseURL == "" {
		baseURL = defaultUploadBaseURL
	}
	return dir, baseURL
}
