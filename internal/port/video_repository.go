package port

import (
	"context"

	"github.com/ankitpatne/clipTag/internal/model"
)

// VideoRepository defines persistence operations for video records.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByVideoID(ctx context.Context, videoID string) (*model.Video, error)
	List(ctx context.Context) ([]*model.Video, error)
	ListWithExplicitFrames(ctx context.Context) ([]*model.Video, error)
	ListUnanalysed(ctx context.Context) ([]string, error)
	SetModerationFlag(ctx context.Context, videoID string, flagged bool) error
	CommitAnalysis(ctx context.Context, videoID string, analysis model.Analysis) error
	SetStreamingURL(ctx context.Context, videoID, streamingURL string) error
}
