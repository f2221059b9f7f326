package storage

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

var (
	// ErrAccessDenied indicates the configured credentials lack permission.
	ErrAccessDenied = errors.New("storage access denied")
	// ErrNotFound indicates a missing bucket or object key.
	ErrNotFound = errors.New("storage object not found")
)

// classify maps an S3 error to one of the exported sentinels, or wraps it
// as an unclassified transport failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %s", ErrAccessDenied, resp.Message)
	case "NoSuchBucket", "NoSuchKey":
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Message)
	default:
		return fmt.Errorf("storage request failed: %w", err)
	}
}

// UserMessage translates a classified storage error into the message shown
// to API consumers.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAccessDenied):
		return "Storage access denied: check the configured credentials."
	case errors.Is(err, ErrNotFound):
		return "Storage bucket or object not found."
	default:
		return "Storage is unreachable. Please try again later."
	}
}
