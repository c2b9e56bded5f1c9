package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ankitpatne/clipTag/internal/cache"
	"github.com/ankitpatne/clipTag/internal/mock"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/repository/mariadb"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
	"github.com/ankitpatne/clipTag/test/testutil"
)

func newRunner(repo *mariadb.VideoRepository, ann *mock.Annotator, gen *mock.Generator, idx *mock.SearchIndex) (*mock.Fetcher, *cache.Cache, func(ctx context.Context, id string) error) {
	fetcher := &mock.Fetcher{Body: []byte("video-bytes")}
	c := cache.NewCacheWithClient(GlobalRedisClient)
	analyser := video.NewVideoAnalyser(repo, &mock.Storage{}, fetcher, ann, gen, video.AnalyserConfig{
		PresignExpiry:     time.Hour,
		AnnotationTimeout: time.Second,
	})
	runner := video.NewAnalysisRunner(analyser, cache.NewRedisLocker(GlobalRedisClient, time.Minute), idx, c)
	return fetcher, c, func(ctx context.Context, id string) error {
		_, err := runner.RunAnalysis(ctx, id)
		return err
	}
}

func TestAnalysisFlow_PersistsResults(t *testing.T) {
	ctx := context.Background()
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	v := createVideo(t, repo, "holiday")

	ann := &mock.Annotator{Out: &model.Annotation{
		Labels: []string{"beach", "sea"},
		Frames: []model.FrameAnnotation{
			{Seconds: 1, Likelihood: model.LikelihoodUnlikely},
			{Seconds: 4, Micros: 500000, Likelihood: model.LikelihoodVeryLikely},
		},
		Speeches: []model.SpeechSegment{{Alternatives: []string{"welcome to the beach"}}},
	}}
	gen := &mock.Generator{Outputs: []string{"Beach day", "A day at the sea."}}
	idx := &mock.SearchIndex{}
	fetcher, c, run := newRunner(repo, ann, gen, idx)

	c.SetVideoDetails(ctx, v.VideoID, []byte(`{"stale":true}`), time.Now().Add(time.Hour))

	if err := run(ctx, v.VideoID); err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}

	if fetcher.DownloadURL != "https://signed.example.com/"+v.StorageKey {
		t.Errorf("downloaded %q", fetcher.DownloadURL)
	}

	got, err := repo.GetByVideoID(ctx, v.VideoID)
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.ExplicitContentDetected == nil || !*got.ExplicitContentDetected {
		t.Errorf("expected video to be flagged, got %v", got.ExplicitContentDetected)
	}
	if len(got.ExplicitFrames) != 1 || got.ExplicitFrames[0].TimeOffset != 4.5 {
		t.Errorf("ExplicitFrames = %v", got.ExplicitFrames)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "beach" {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.AIGeneratedTitle == nil || *got.AIGeneratedTitle != "Beach day" {
		t.Errorf("AIGeneratedTitle = %v", got.AIGeneratedTitle)
	}
	if got.Transcription == nil || *got.Transcription != "welcome to the beach" {
		t.Errorf("Transcription = %v", got.Transcription)
	}

	if len(idx.Updated) != 1 || idx.Updated[0].VideoID != v.VideoID {
		t.Errorf("search index updates = %+v", idx.Updated)
	}

	cached, err := c.GetVideoDetails(ctx, v.VideoID)
	if err != nil {
		t.Fatalf("GetVideoDetails failed: %v", err)
	}
	if cached != nil {
		t.Errorf("expected cached details to be invalidated, got %s", cached)
	}

	ids, err := repo.ListUnanalysed(ctx)
	if err != nil {
		t.Fatalf("ListUnanalysed failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no unanalysed videos, got %v", ids)
	}
}

func TestAnalysisFlow_GenerationFailureKeepsFlag(t *testing.T) {
	ctx := context.Background()
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	v := createVideo(t, repo, "clip")

	ann := &mock.Annotator{Out: &model.Annotation{Labels: []string{"dog"}}}
	gen := &mock.Generator{Err: errors.New("quota exceeded"), FailAt: 2}
	idx := &mock.SearchIndex{}
	_, _, run := newRunner(repo, ann, gen, idx)

	err := run(ctx, v.VideoID)
	if !errors.Is(err, video.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}

	got, err := repo.GetByVideoID(ctx, v.VideoID)
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.ExplicitContentDetected == nil || *got.ExplicitContentDetected {
		t.Errorf("expected moderation flag false, got %v", got.ExplicitContentDetected)
	}
	if got.Tags != nil || got.AIGeneratedTitle != nil {
		t.Errorf("expected no committed analysis, got tags %v title %v", got.Tags, got.AIGeneratedTitle)
	}
	if len(idx.Updated) != 0 {
		t.Errorf("expected no search index update, got %d", len(idx.Updated))
	}
}

func TestAnalysisFlow_ConcurrentRunRejected(t *testing.T) {
	ctx := context.Background()
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	v := createVideo(t, repo, "clip")

	locker := cache.NewRedisLocker(GlobalRedisClient, time.Minute)
	release, ok, err := locker.TryLock(ctx, v.VideoID)
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer release()

	ann := &mock.Annotator{Out: &model.Annotation{}}
	_, _, run := newRunner(repo, ann, &mock.Generator{}, &mock.SearchIndex{})

	if err := run(ctx, v.VideoID); !errors.Is(err, video.ErrAnalysisInProgress) {
		t.Fatalf("expected ErrAnalysisInProgress, got %v", err)
	}
	if ann.Called {
		t.Error("annotator should not run while the video is locked")
	}
}

func TestAnalysisFlow_UnknownVideo(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	_, _, run := newRunner(repo, &mock.Annotator{}, &mock.Generator{}, &mock.SearchIndex{})

	if err := run(context.Background(), "missing"); !errors.Is(err, video.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
