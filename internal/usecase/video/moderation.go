package video

import (
	"context"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
)

// Decide is the moderation decision over frames already reduced by QualifyingFrames.
func Decide(frames model.ExplicitFrames) bool {
	return len(frames) > 0
}

// QualifyingFrames keeps the frames rated LIKELY or VERY_LIKELY, in order.
func QualifyingFrames(frames model.ExplicitFrames) model.ExplicitFrames {
	out := model.ExplicitFrames{}
	for _, f := range frames {
		if f.Likelihood.Qualifies() {
			out = append(out, f)
		}
	}
	return out
}

// Flagged reports whether stored frames put a video in the moderation queue.
func Flagged(frames model.ExplicitFrames) bool {
	return Decide(QualifyingFrames(frames))
}

type moderationListerSrv struct {
	repo port.VideoRepository
	strg port.Storage
}

// compile-time check: *moderationListerSrv must satisfy port.ModerationLister
var _ port.ModerationLister = (*moderationListerSrv)(nil)

func NewModerationLister(repo port.VideoRepository, strg port.Storage) port.ModerationLister {
	return &moderationListerSrv{repo, strg}
}

func (s *moderationListerSrv) ListFlagged(ctx context.Context) ([]port.FlaggedVideoOutput, error) {
	videos, err := s.repo.ListWithExplicitFrames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]port.FlaggedVideoOutput, 0)
	for _, v := range videos {
		if !Flagged(v.ExplicitFrames) {
			continue
		}
		out = append(out, port.FlaggedVideoOutput{
			VideoID:         v.VideoID,
			S3URL:           s.strg.PublicURL(v.StorageKey),
			ExplicitContent: v.ExplicitFrames,
		})
	}
	logger.Debugf(ctx, "%d of %d annotated videos flagged for moderation", len(out), len(videos))

	return out, nil
}
