package storage

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		code string
		want error
	}{
		{"access denied", "AccessDenied", ErrAccessDenied},
		{"bad access key", "InvalidAccessKeyId", ErrAccessDenied},
		{"bad signature", "SignatureDoesNotMatch", ErrAccessDenied},
		{"missing bucket", "NoSuchBucket", ErrNotFound},
		{"missing key", "NoSuchKey", ErrNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := classify(minio.ErrorResponse{Code: c.code, Message: c.name})
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	err := classify(errors.New("connection refused"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "ok", UserMessage(nil))
	assert.Contains(t, UserMessage(classify(minio.ErrorResponse{Code: "AccessDenied"})), "credentials")
	assert.Contains(t, UserMessage(classify(minio.ErrorResponse{Code: "NoSuchBucket"})), "not found")
	assert.Contains(t, UserMessage(errors.New("dial tcp: timeout")), "unreachable")
}
