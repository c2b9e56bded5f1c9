package mock

import (
	"context"
	"sync"

	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

// VideoRepo is an in-memory port.VideoRepository for tests.
// Records are kept in insertion order; List returns them newest first.
type VideoRepo struct {
	mu     sync.Mutex
	videos []*model.Video

	// errors
	CreateErr         error
	GetErr            error
	ListErr           error
	ListFramesErr     error
	ListUnanalysedErr error
	FlagErr           error
	CommitErr         error
	StreamingErr      error

	// captured inputs
	Created       []*model.Video
	Flags         map[string]bool
	Commits       map[string]model.Analysis
	StreamingURLs map[string]string

	// call flags
	GetCalled    bool
	FlagCalled   bool
	CommitCalled bool
}

// NewVideoRepo returns a repository seeded with videos, oldest first.
func NewVideoRepo(videos ...*model.Video) *VideoRepo {
	r := &VideoRepo{}
	for i, v := range videos {
		v.ID = int64(i + 1)
		r.videos = append(r.videos, v)
	}
	return r
}

func (r *VideoRepo) find(videoID string) *model.Video {
	for _, v := range r.videos {
		if v.VideoID == videoID {
			return v
		}
	}
	return nil
}

// Video returns a copy of the stored record, or nil.
func (r *VideoRepo) Video(videoID string) *model.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.find(videoID)
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func (r *VideoRepo) Create(ctx context.Context, v *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created = append(r.Created, v)
	if r.CreateErr != nil {
		return r.CreateErr
	}
	v.ID = int64(len(r.videos) + 1)
	r.videos = append(r.videos, v)
	return nil
}

func (r *VideoRepo) GetByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GetCalled = true
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	v := r.find(videoID)
	if v == nil {
		return nil, video.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *VideoRepo) List(ctx context.Context) ([]*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make([]*model.Video, 0, len(r.videos))
	for i := len(r.videos) - 1; i >= 0; i-- {
		cp := *r.videos[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *VideoRepo) ListWithExplicitFrames(ctx context.Context) ([]*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListFramesErr != nil {
		return nil, r.ListFramesErr
	}
	var out []*model.Video
	for _, v := range r.videos {
		if v.ExplicitFrames != nil {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *VideoRepo) ListUnanalysed(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListUnanalysedErr != nil {
		return nil, r.ListUnanalysedErr
	}
	var out []string
	for _, v := range r.videos {
		if v.ExplicitContentDetected == nil {
			out = append(out, v.VideoID)
		}
	}
	return out, nil
}

func (r *VideoRepo) SetModerationFlag(ctx context.Context, videoID string, flagged bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FlagCalled = true
	if r.FlagErr != nil {
		return r.FlagErr
	}
	if r.Flags == nil {
		r.Flags = map[string]bool{}
	}
	r.Flags[videoID] = flagged
	if v := r.find(videoID); v != nil {
		v.ExplicitContentDetected = &flagged
	}
	return nil
}

func (r *VideoRepo) CommitAnalysis(ctx context.Context, videoID string, a model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CommitCalled = true
	if r.CommitErr != nil {
		return r.CommitErr
	}
	v := r.find(videoID)
	if v == nil {
		return video.ErrRecordNotFound
	}
	if r.Commits == nil {
		r.Commits = map[string]model.Analysis{}
	}
	r.Commits[videoID] = a
	v.Tags = a.Tags
	v.ExplicitFrames = a.ExplicitFrames
	v.Transcription = &a.Transcription
	v.AIGeneratedTitle = &a.AIGeneratedTitle
	v.AIGeneratedDescription = &a.AIGeneratedDescription
	return nil
}

func (r *VideoRepo) SetStreamingURL(ctx context.Context, videoID, streamingURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.StreamingErr != nil {
		return r.StreamingErr
	}
	v := r.find(videoID)
	if v == nil {
		return video.ErrRecordNotFound
	}
	if r.StreamingURLs == nil {
		r.StreamingURLs = map[string]string{}
	}
	r.StreamingURLs[videoID] = streamingURL
	v.StreamingURL = &streamingURL
	return nil
}
