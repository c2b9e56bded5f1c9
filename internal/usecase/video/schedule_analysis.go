package video

import (
	"context"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

type analysisSchedulerSrv struct {
	repo  port.VideoRepository
	tasks port.TaskDispatcher
}

// compile-time check: *analysisSchedulerSrv must satisfy port.AnalysisScheduler
var _ port.AnalysisScheduler = (*analysisSchedulerSrv)(nil)

func NewAnalysisScheduler(repo port.VideoRepository, tasks port.TaskDispatcher) port.AnalysisScheduler {
	return &analysisSchedulerSrv{repo, tasks}
}

func (s *analysisSchedulerSrv) ScheduleAnalysis(ctx context.Context, videoID string) error {
	if _, err := s.repo.GetByVideoID(ctx, videoID); err != nil {
		return err
	}

	if err := s.tasks.EnqueueAnalyseVideo(ctx, videoID); err != nil {
		return err
	}
	logger.Infof(ctx, "queued analysis of video %q", videoID)

	return nil
}

type backlogAnalyserSrv struct {
	repo  port.VideoRepository
	tasks port.TaskDispatcher
}

// compile-time check: *backlogAnalyserSrv must satisfy port.BacklogAnalyser
var _ port.BacklogAnalyser = (*backlogAnalyserSrv)(nil)

// NewBacklogAnalyser constructs a BacklogAnalyser implementation.
func NewBacklogAnalyser(repo port.VideoRepository, tasks port.TaskDispatcher) port.BacklogAnalyser {
	return &backlogAnalyserSrv{repo, tasks}
}

// AnalyseBacklog enqueues an analysis for every video whose moderation flag is
// still unknown.
func (s *backlogAnalyserSrv) AnalyseBacklog(ctx context.Context) error {
	ids, err := s.repo.ListUnanalysed(ctx)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no videos found to analyse")
	}

	for _, id := range ids {
		logger.Infof(ctx, "starting analysis for video %q", id)
		if err := s.tasks.EnqueueAnalyseVideo(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue analyse task for video %q: %v", id, err)
		}
	}
	return nil
}
