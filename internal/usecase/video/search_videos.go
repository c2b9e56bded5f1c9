package video

import (
	"context"
	"encoding/json"

	"github.com/ankitpatne/clipTag/internal/port"
)

type videoSearcherSrv struct {
	index port.SearchIndex
}

// compile-time check: *videoSearcherSrv must satisfy port.VideoSearcher
var _ port.VideoSearcher = (*videoSearcherSrv)(nil)

func NewVideoSearcher(index port.SearchIndex) port.VideoSearcher {
	return &videoSearcherSrv{index}
}

func (s *videoSearcherSrv) SearchVideos(ctx context.Context, in port.SearchVideosInput) (port.SearchVideosOutput, error) {
	hits, err := s.index.Search(ctx, in.Query)
	if err != nil {
		return port.SearchVideosOutput{}, err
	}
	if hits == nil {
		hits = []json.RawMessage{}
	}
	return port.SearchVideosOutput{Results: hits}, nil
}
