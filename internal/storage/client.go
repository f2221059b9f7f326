package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the S3-compatible endpoint settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is prepended to object keys to build public URLs,
	// e.g. a CDN or the bucket website endpoint.
	PublicBaseURL string
}

// Client is an ObjectStore backed by an S3-compatible service.
type Client struct {
	mc     *minio.Client
	bucket string
	public string
}

var _ ObjectStore = (*Client)(nil)

// NewClient constructs a storage client. It performs no network calls;
// use HealthCheck to verify connectivity.
func NewClient(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Client{
		mc:     mc,
		bucket: cfg.Bucket,
		public: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload streams a blob into the bucket under a fresh key and returns the
// key with its public URL.
func (c *Client) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Object, error) {
	key := "videos/" + uuid.NewString() + extensionFor(contentType)

	info, err := c.mc.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Error("Failed to upload object", "error", err, "bucket", c.bucket, "key", key)
		return Object{}, classify(err)
	}

	log.Info("Uploaded object", "bucket", c.bucket, "key", info.Key, "size", info.Size)
	return Object{
		Key: info.Key,
		URL: c.public + "/" + info.Key,
	}, nil
}

// SignedURL returns a time-limited URL for a stored object.
func (c *Client) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, key, ttl, nil)
	if err != nil {
		log.Error("Failed to presign object URL", "error", err, "bucket", c.bucket, "key", key)
		return "", classify(err)
	}
	return u.String(), nil
}

// HealthCheck verifies the bucket is reachable with the configured
// credentials.
func (c *Client) HealthCheck(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return classify(err)
	}
	if !exists {
		return fmt.Errorf("%w: bucket %q does not exist", ErrNotFound, c.bucket)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}
