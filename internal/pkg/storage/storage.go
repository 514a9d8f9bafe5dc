package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

// Store is the object storage surface the portfolio needs.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
}

// Config for an S3-compatible bucket.
type Config struct {
	Endpoint  string // empty for AWS, set for MinIO/R2
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // CDN/base URL used for public links; optional
}
