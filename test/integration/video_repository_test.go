package integration

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/repository/mariadb"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
	"github.com/ankitpatne/clipTag/test/testutil"
)

func createVideo(t *testing.T, repo *mariadb.VideoRepository, title string) *model.Video {
	t.Helper()
	id := uuid.NewString()
	v := &model.Video{
		VideoID:     id,
		StorageKey:  id + ".mp4",
		Duration:    0,
		Title:       strPtr(title),
		Description: strPtr("N/A"),
	}
	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if v.ID == 0 {
		t.Fatal("expected auto-increment ID to be set")
	}
	return v
}

func TestVideoRepository_CreateAndGet(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	ctx := context.Background()

	created := createVideo(t, repo, "Cats")

	got, err := repo.GetByVideoID(ctx, created.VideoID)
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.ID != created.ID || got.StorageKey != created.StorageKey {
		t.Errorf("got %+v, want id %d key %q", got, created.ID, created.StorageKey)
	}
	if got.Title == nil || *got.Title != "Cats" {
		t.Errorf("Title = %v, want Cats", got.Title)
	}
	if got.ExplicitContentDetected != nil {
		t.Errorf("expected unanalysed video, got flag %v", *got.ExplicitContentDetected)
	}
	if got.Tags != nil || got.ExplicitFrames != nil {
		t.Errorf("expected NULL analysis fields, got tags %v frames %v", got.Tags, got.ExplicitFrames)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set by the database")
	}
}

func TestVideoRepository_GetNotFound(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))

	_, err := repo.GetByVideoID(context.Background(), "missing")
	if !errors.Is(err, video.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestVideoRepository_ListNewestFirst(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))

	first := createVideo(t, repo, "first")
	second := createVideo(t, repo, "second")

	videos, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	if videos[0].VideoID != second.VideoID || videos[1].VideoID != first.VideoID {
		t.Errorf("unexpected order: %q, %q", videos[0].VideoID, videos[1].VideoID)
	}
}

func TestVideoRepository_CommitAnalysis(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	ctx := context.Background()

	v := createVideo(t, repo, "clip")
	analysis := model.Analysis{
		Tags: model.Tags{"cat", "indoor"},
		ExplicitFrames: model.ExplicitFrames{
			{TimeOffset: 2.5, Likelihood: model.LikelihoodLikely},
		},
		Transcription:          "hello world",
		AIGeneratedTitle:       "A cat indoors",
		AIGeneratedDescription: "A short clip of a cat.",
	}

	if err := repo.SetModerationFlag(ctx, v.VideoID, true); err != nil {
		t.Fatalf("SetModerationFlag failed: %v", err)
	}
	if err := repo.CommitAnalysis(ctx, v.VideoID, analysis); err != nil {
		t.Fatalf("CommitAnalysis failed: %v", err)
	}
	// committing identical values must not be mistaken for a missing row
	if err := repo.CommitAnalysis(ctx, v.VideoID, analysis); err != nil {
		t.Fatalf("repeated CommitAnalysis failed: %v", err)
	}

	got, err := repo.GetByVideoID(ctx, v.VideoID)
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, analysis.Tags) {
		t.Errorf("Tags = %v, want %v", got.Tags, analysis.Tags)
	}
	if !reflect.DeepEqual(got.ExplicitFrames, analysis.ExplicitFrames) {
		t.Errorf("ExplicitFrames = %v, want %v", got.ExplicitFrames, analysis.ExplicitFrames)
	}
	if got.ExplicitContentDetected == nil || !*got.ExplicitContentDetected {
		t.Errorf("expected moderation flag true, got %v", got.ExplicitContentDetected)
	}
	if got.AIGeneratedTitle == nil || *got.AIGeneratedTitle != analysis.AIGeneratedTitle {
		t.Errorf("AIGeneratedTitle = %v", got.AIGeneratedTitle)
	}
	if got.Transcription == nil || *got.Transcription != analysis.Transcription {
		t.Errorf("Transcription = %v", got.Transcription)
	}
}

func TestVideoRepository_CommitAnalysisNotFound(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))

	err := repo.CommitAnalysis(context.Background(), "missing", model.Analysis{})
	if !errors.Is(err, video.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestVideoRepository_SetStreamingURL(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	ctx := context.Background()

	v := createVideo(t, repo, "clip")
	const url = "https://cdn.example.com/hls/clip.m3u8"
	if err := repo.SetStreamingURL(ctx, v.VideoID, url); err != nil {
		t.Fatalf("SetStreamingURL failed: %v", err)
	}

	got, err := repo.GetByVideoID(ctx, v.VideoID)
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got.StreamingURL == nil || *got.StreamingURL != url {
		t.Errorf("StreamingURL = %v, want %q", got.StreamingURL, url)
	}

	if err := repo.SetStreamingURL(ctx, "missing", url); !errors.Is(err, video.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for unknown video, got %v", err)
	}
}

func TestVideoRepository_Moderation(t *testing.T) {
	repo := mariadb.NewVideoRepository(testutil.MigratedDB(t))
	ctx := context.Background()

	pending := createVideo(t, repo, "pending")
	clean := createVideo(t, repo, "clean")
	flagged := createVideo(t, repo, "flagged")

	if err := repo.SetModerationFlag(ctx, clean.VideoID, false); err != nil {
		t.Fatalf("SetModerationFlag failed: %v", err)
	}
	if err := repo.CommitAnalysis(ctx, clean.VideoID, model.Analysis{
		Tags:           model.Tags{},
		ExplicitFrames: model.ExplicitFrames{},
	}); err != nil {
		t.Fatalf("CommitAnalysis failed: %v", err)
	}
	if err := repo.SetModerationFlag(ctx, flagged.VideoID, true); err != nil {
		t.Fatalf("SetModerationFlag failed: %v", err)
	}
	if err := repo.CommitAnalysis(ctx, flagged.VideoID, model.Analysis{
		ExplicitFrames: model.ExplicitFrames{{TimeOffset: 1, Likelihood: model.LikelihoodVeryLikely}},
	}); err != nil {
		t.Fatalf("CommitAnalysis failed: %v", err)
	}

	ids, err := repo.ListUnanalysed(ctx)
	if err != nil {
		t.Fatalf("ListUnanalysed failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{pending.VideoID}) {
		t.Errorf("ListUnanalysed = %v, want [%s]", ids, pending.VideoID)
	}

	withFrames, err := repo.ListWithExplicitFrames(ctx)
	if err != nil {
		t.Fatalf("ListWithExplicitFrames failed: %v", err)
	}
	if len(withFrames) != 2 {
		t.Fatalf("expected 2 analysed videos, got %d", len(withFrames))
	}
	if withFrames[0].VideoID != clean.VideoID || withFrames[1].VideoID != flagged.VideoID {
		t.Errorf("unexpected videos: %q, %q", withFrames[0].VideoID, withFrames[1].VideoID)
	}
}
