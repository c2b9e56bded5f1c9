package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/h2non/filetype"
)

const (
	DefaultTitle       = "Untitled Video"
	DefaultDescription = "N/A"

	// duration is not probed at upload time
	placeholderDuration = 120

	defaultContentType = "video/mp4"
	sniffLen           = 262
)

type videoUploaderSrv struct {
	repo  port.VideoRepository
	strg  port.Storage
	index port.SearchIndex
	idGen port.IDGen
}

// compile-time check: *videoUploaderSrv must satisfy port.VideoUploader
var _ port.VideoUploader = (*videoUploaderSrv)(nil)

func NewVideoUploader(repo port.VideoRepository, strg port.Storage, index port.SearchIndex, idGen port.IDGen) port.VideoUploader {
	return &videoUploaderSrv{repo, strg, index, idGen}
}

func StorageKey(videoID string) string {
	return fmt.Sprintf("assets01/videos/%s.mp4", videoID)
}

func (s *videoUploaderSrv) UploadVideo(ctx context.Context, in port.UploadVideoInput) (port.UploadVideoOutput, error) {
	if in.Title == "" {
		in.Title = DefaultTitle
	}
	if in.Description == "" {
		in.Description = DefaultDescription
	}

	videoID := s.idGen()
	key := StorageKey(videoID)

	reader, contentType, err := sniff(in.File)
	if err != nil {
		return port.UploadVideoOutput{}, fmt.Errorf("could not read uploaded file: %w", err)
	}
	logger.Debugf(ctx, "uploaded file for video %q detected as %q", videoID, contentType)

	if err := s.strg.SaveFile(ctx, key, reader, in.Size, contentType); err != nil {
		return port.UploadVideoOutput{}, fmt.Errorf("could not store file %q: %w", key, err)
	}

	v := &model.Video{
		VideoID:     videoID,
		StorageKey:  key,
		Duration:    placeholderDuration,
		Title:       &in.Title,
		Description: &in.Description,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return port.UploadVideoOutput{}, fmt.Errorf("could not create record for video %q: %w", videoID, err)
	}

	if err := s.index.IndexVideo(ctx, v.SearchDocument(s.strg.PublicURL(key))); err != nil {
		logger.Warnf(ctx, "video %q is missing from the search index: %v", videoID, err)
	}

	return port.UploadVideoOutput{VideoID: videoID, StreamingURL: v.StreamingURL}, nil
}

// sniff peeks at the head of r to detect its MIME type and returns a reader
// replaying the full content.
func sniff(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]

	contentType := defaultContentType
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}

	return io.MultiReader(bytes.NewReader(head), r), contentType, nil
}
