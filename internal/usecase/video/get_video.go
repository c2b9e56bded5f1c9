package video

import (
	"context"

	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
)

type videoGetterSrv struct {
	repo port.VideoRepository
	strg port.Storage
}

// compile-time check: *videoGetterSrv must satisfy port.VideoGetter
var _ port.VideoGetter = (*videoGetterSrv)(nil)

func NewVideoGetter(repo port.VideoRepository, strg port.Storage) port.VideoGetter {
	return &videoGetterSrv{repo, strg}
}

func (s *videoGetterSrv) GetVideo(ctx context.Context, videoID string) (*port.VideoOutput, error) {
	v, err := s.repo.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	out := toVideoOutput(v, s.strg)
	return &out, nil
}

type videoListerSrv struct {
	repo port.VideoRepository
	strg port.Storage
}

// compile-time check: *videoListerSrv must satisfy port.VideoLister
var _ port.VideoLister = (*videoListerSrv)(nil)

func NewVideoLister(repo port.VideoRepository, strg port.Storage) port.VideoLister {
	return &videoListerSrv{repo, strg}
}

func (s *videoListerSrv) ListVideos(ctx context.Context) ([]port.VideoOutput, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]port.VideoOutput, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoOutput(v, s.strg))
	}
	return out, nil
}

func toVideoOutput(v *model.Video, strg port.Storage) port.VideoOutput {
	return port.VideoOutput{
		VideoID:                 v.VideoID,
		S3URL:                   strg.PublicURL(v.StorageKey),
		Title:                   v.Title,
		Description:             v.Description,
		Tags:                    v.Tags,
		ExplicitContent:         v.ExplicitFrames,
		Transcription:           v.Transcription,
		AIGeneratedTitle:        v.AIGeneratedTitle,
		AIGeneratedDescription:  v.AIGeneratedDescription,
		StreamingURL:            v.StreamingURL,
		ExplicitContentDetected: v.ExplicitContentDetected,
	}
}
