package video

import (
	"context"
	"fmt"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

type analysisRunnerSrv struct {
	analyser port.VideoAnalyser
	locker   port.Locker
	index    port.SearchIndex
	cache    port.Cache
}

// compile-time check: *analysisRunnerSrv must satisfy port.AnalysisRunner
var _ port.AnalysisRunner = (*analysisRunnerSrv)(nil)

func NewAnalysisRunner(analyser port.VideoAnalyser, locker port.Locker, index port.SearchIndex, cache port.Cache) port.AnalysisRunner {
	return &analysisRunnerSrv{analyser, locker, index, cache}
}

// RunAnalysis runs the pipeline while holding the video's lock, then mirrors the
// result into the search index. A second run for the same video fails fast with
// ErrAnalysisInProgress.
func (s *analysisRunnerSrv) RunAnalysis(ctx context.Context, videoID string) (port.AnalysisOutput, error) {
	release, ok, err := s.locker.TryLock(ctx, videoID)
	if err != nil {
		return port.AnalysisOutput{}, fmt.Errorf("could not acquire analysis lock for video %q: %w", videoID, err)
	}
	if !ok {
		return port.AnalysisOutput{}, ErrAnalysisInProgress
	}
	defer release()

	// the moderation flag may change even when the run fails later on
	defer s.invalidate(ctx, videoID)

	out, err := s.analyser.AnalyseVideo(ctx, videoID)
	if err != nil {
		return port.AnalysisOutput{}, err
	}

	if err := s.index.UpdateAnalysis(ctx, out); err != nil {
		logger.Warnf(ctx, "search document of video %q is stale: %v", videoID, err)
	}

	return out, nil
}

func (s *analysisRunnerSrv) invalidate(ctx context.Context, videoID string) {
	if err := s.cache.DeleteVideoDetails(ctx, videoID); err != nil {
		logger.Warnf(ctx, "failed to delete cached details of video %q: %v", videoID, err)
	}
	if err := s.cache.DeleteEtagVideoDetails(ctx, videoID); err != nil {
		logger.Warnf(ctx, "failed to delete cached etag of video %q: %v", videoID, err)
	}
}
