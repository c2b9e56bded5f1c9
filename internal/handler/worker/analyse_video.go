package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/task"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
	"github.com/hibiken/asynq"
)

// AnalyseVideoHandler handles an analyse-video task by delegating to the
// analysis runner. Missing videos are not retried.
func AnalyseVideoHandler(ctx context.Context, p task.AnalyseVideoPayload, svc port.AnalysisRunner) error {
	_, err := svc.RunAnalysis(ctx, p.VideoID)
	switch {
	case err == nil:
		logger.Infof(ctx, "✅  Successfully analysed video %q", p.VideoID)
		return nil
	case errors.Is(err, video.ErrAnalysisInProgress):
		logger.Infof(ctx, "analysis of video %q already running elsewhere, skipping", p.VideoID)
		return nil
	case errors.Is(err, video.ErrRecordNotFound):
		logger.Warnf(ctx, "❌  Video %q no longer exists", p.VideoID)
		return fmt.Errorf("video %q: %w: %w", p.VideoID, err, asynq.SkipRetry)
	default:
		logger.Errorf(ctx, "❌  Failed to analyse video %q: %v", p.VideoID, err)
		return err
	}
}
