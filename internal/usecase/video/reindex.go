package video

import (
	"context"
	"fmt"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

type searchReindexerSrv struct {
	repo  port.VideoRepository
	strg  port.Storage
	index port.SearchIndex
}

// compile-time check: *searchReindexerSrv must satisfy port.SearchReindexer
var _ port.SearchReindexer = (*searchReindexerSrv)(nil)

func NewSearchReindexer(repo port.VideoRepository, strg port.Storage, index port.SearchIndex) port.SearchReindexer {
	return &searchReindexerSrv{repo, strg, index}
}

// Reindex writes a full search document for every stored video. Failures on
// single documents are logged and counted.
func (s *searchReindexerSrv) Reindex(ctx context.Context) error {
	if err := s.index.EnsureIndex(ctx); err != nil {
		return err
	}

	videos, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, v := range videos {
		if err := s.index.IndexVideo(ctx, v.SearchDocument(s.strg.PublicURL(v.StorageKey))); err != nil {
			failed++
			logger.Warnf(ctx, "failed to index video %q: %v", v.VideoID, err)
		}
	}
	logger.Infof(ctx, "reindexed %d of %d videos", len(videos)-failed, len(videos))

	if failed > 0 {
		return fmt.Errorf("%d videos could not be indexed", failed)
	}
	return nil
}
