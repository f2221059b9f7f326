package storage

import (
	"context"
	"io"
	"time"
)

// Object identifies an uploaded blob.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ObjectStore defines the narrow blob-store surface the application needs.
// Implementations are explicitly constructed and injected; there is no
// package-level client state.
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Object, error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	HealthCheck(ctx context.Context) error
}
