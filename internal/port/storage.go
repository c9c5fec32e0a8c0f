package port

import (
	"context"
	"io"
)

// UploadInput describes a batch image to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput describes the stored object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage is the contract for batch image storage. The bucket is
// private; clients read images through presigned URLs only.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
