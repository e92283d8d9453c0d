package domain

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded files land. Implemented by S3/MinIO
// and the local filesystem.
type FileStorage interface {
	// UploadFile stores the content under key and returns the public URL.
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)

	// DeleteFile removes a file by its key.
	DeleteFile(ctx context.Context, key string) error

	// GetPresignedURL generates a temporary URL for viewing a file.
	GetPresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)

	// GetKeyFromURL extracts the storage key from a public URL.
	GetKeyFromURL(url string) (string, error)
}
