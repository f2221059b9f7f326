package storage

import (
	"context"
	"io"
	"sync"
	"time"
)

// MockStore is a mock implementation of ObjectStore for testing.
type MockStore struct {
	mu sync.Mutex

	UploadFunc      func(ctx context.Context, r io.Reader, size int64, contentType string) (Object, error)
	SignedURLFunc   func(ctx context.Context, key string, ttl time.Duration) (string, error)
	HealthCheckFunc func(ctx context.Context) error

	UploadCalls []struct {
		Size        int64
		ContentType string
	}
	SignedURLCalls []struct {
		Key string
		TTL time.Duration
	}
}

var _ ObjectStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls = append(m.UploadCalls, struct {
		Size        int64
		ContentType string
	}{size, contentType})
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, r, size, contentType)
	}
	return Object{Key: "videos/mock", URL: "https://cdn.example.com/videos/mock"}, nil
}

func (m *MockStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignedURLCalls = append(m.SignedURLCalls, struct {
		Key string
		TTL time.Duration
	}{key, ttl})
	if m.SignedURLFunc != nil {
		return m.SignedURLFunc(ctx, key, ttl)
	}
	return "https://cdn.example.com/" + key + "?signed=1", nil
}

func (m *MockStore) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HealthCheckFunc != nil {
		return m.HealthCheckFunc(ctx)
	}
	return nil
}
