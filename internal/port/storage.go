package port

import (
	"context"
	"io"
	"time"
)

// Storage defines object storage operations on the videos bucket.
type Storage interface {
	InitBucket(ctx context.Context) error
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error
	GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error)
	PublicURL(fileKey string) string
}
