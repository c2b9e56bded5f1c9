package video_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ankitpatne/clipTag/internal/mock"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func TestReindex(t *testing.T) {
	repo := mock.NewVideoRepo(
		&model.Video{VideoID: "a", StorageKey: video.StorageKey("a"), Title: ptr("A")},
		&model.Video{VideoID: "b", StorageKey: video.StorageKey("b"), Tags: model.Tags{"cat"}},
	)
	index := &mock.SearchIndex{}
	svc := video.NewSearchReindexer(repo, &mock.Storage{}, index)

	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !index.EnsureCalled {
		t.Error("index should be ensured first")
	}
	if len(index.Indexed) != 2 {
		t.Fatalf("indexed %d documents; want 2", len(index.Indexed))
	}
	// newest first
	if index.Indexed[0].VideoID != "b" || index.Indexed[1].Title != "A" {
		t.Errorf("documents = %+v", index.Indexed)
	}
	if index.Indexed[0].S3URL != "https://bucket.s3.amazonaws.com/assets01/videos/b.mp4" {
		t.Errorf("s3_url = %q", index.Indexed[0].S3URL)
	}
}

func TestReindex_PartialFailure(t *testing.T) {
	repo := mock.NewVideoRepo(&model.Video{VideoID: "a"}, &model.Video{VideoID: "b"})
	index := &mock.SearchIndex{IndexErr: errors.New("mapping conflict")}
	svc := video.NewSearchReindexer(repo, &mock.Storage{}, index)

	if err := svc.Reindex(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(index.Indexed) != 2 {
		t.Errorf("every video should be attempted, got %d", len(index.Indexed))
	}
}

func TestReindex_EnsureError(t *testing.T) {
	index := &mock.SearchIndex{EnsureErr: errors.New("unauthorized")}
	svc := video.NewSearchReindexer(mock.NewVideoRepo(&model.Video{VideoID: "a"}), &mock.Storage{}, index)

	if err := svc.Reindex(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(index.Indexed) != 0 {
		t.Error("nothing should be indexed")
	}
}
