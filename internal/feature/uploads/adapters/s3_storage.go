package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"microblog/internal/feature/uploads/usecase"
)

// S3Config holds configuration for the S3 storage backend.
type S3Config struct {
	Bucket   string // destination bucket
	Region   string // AWS region
	Location string // public URL prefix, e.g. "https://<bucket>.s3.<region>.amazonaws.com/"
}

// LoadS3Config loads S3 storage configuration from environment variables.
func LoadS3Config() S3Config {
	return S3Config{
		Bucket:   os.Getenv("S3_BUCKET"),
		Region:   os.Getenv("AWS_REGION"),
		Location: os.Getenv("S3_LOCATION"),
	}
}

// s3API is the slice of the S3 client the adapter needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Storage writes uploads to an S3 bucket.
type s3Storage struct {
	cfg    S3Config
	client s3API
}

// Compile-time check that s3Storage implements Storage.
var _ usecase.Storage = (*s3Storage)(nil)

// NewS3Storage creates an s3Storage using the default AWS credential chain.
func NewS3Storage(ctx context.Context, cfg S3Config) (*s3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &s3Storage{cfg: cfg, client: s3.NewFromConfig(awsCfg)}, nil
}

// newS3StorageWithClient is the test seam for injecting a fake S3 client.
func newS3StorageWithClient(cfg S3Config, client s3API) *s3Storage {
	return &s3Storage{cfg: cfg, client: client}
}

// Put uploads data under key and returns its public URL.
func (s *s3Storage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return strings.TrimRight(s.cfg.Location, "/") + "/" + key, nil
}
