package mock

import (
	"context"
	"io"
	"time"
)

// Storage implements port.Storage for tests.
type Storage struct {
	// stored values
	DownloadURL string
	BaseURL     string
	Saved       []byte

	// captured inputs
	ObjectKey   string
	ContentType string
	Size        int64
	TTL         time.Duration

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	SaveErr                 error

	// call flags
	InitBucketCalled           bool
	GenerateDownloadLinkCalled bool
	SaveCalled                 bool
}

func (s *Storage) InitBucket(ctx context.Context) error {
	s.InitBucketCalled = true
	return s.InitBucketErr
}

func (s *Storage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	s.SaveCalled = true
	s.ObjectKey = fileKey
	s.Size = fileSize
	s.ContentType = contentType
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.Saved = data
	return nil
}

func (s *Storage) GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	s.GenerateDownloadLinkCalled = true
	s.ObjectKey = fileKey
	s.TTL = expiry
	if s.GenerateDownloadLinkErr != nil {
		return "", s.GenerateDownloadLinkErr
	}
	if s.DownloadURL != "" {
		return s.DownloadURL, nil
	}
	return "https://signed.example.com/" + fileKey, nil
}

func (s *Storage) PublicURL(fileKey string) string {
	base := s.BaseURL
	if base == "" {
		base = "https://bucket.s3.amazonaws.com"
	}
	return base + "/" + fileKey
}
