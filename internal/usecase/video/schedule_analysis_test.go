package video_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ankitpatne/clipTag/internal/mock"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func TestScheduleAnalysis(t *testing.T) {
	repo := mock.NewVideoRepo(&model.Video{VideoID: "v1"})
	tasks := &mock.MockDispatcher{}
	svc := video.NewAnalysisScheduler(repo, tasks)

	if err := svc.ScheduleAnalysis(context.Background(), "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tasks.AnalyseIDs, []string{"v1"}) {
		t.Errorf("enqueued %v", tasks.AnalyseIDs)
	}
}

func TestScheduleAnalysis_UnknownVideo(t *testing.T) {
	tasks := &mock.MockDispatcher{}
	svc := video.NewAnalysisScheduler(mock.NewVideoRepo(), tasks)

	err := svc.ScheduleAnalysis(context.Background(), "nope")
	if !errors.Is(err, video.ErrRecordNotFound) {
		t.Fatalf("err = %v; want ErrRecordNotFound", err)
	}
	if tasks.AnalyseCalled {
		t.Error("nothing should be enqueued for an unknown video")
	}
}

func TestScheduleAnalysis_DispatchError(t *testing.T) {
	repo := mock.NewVideoRepo(&model.Video{VideoID: "v1"})
	tasks := &mock.MockDispatcher{AnalyseErr: video.ErrDispatchDisabled}
	svc := video.NewAnalysisScheduler(repo, tasks)

	if err := svc.ScheduleAnalysis(context.Background(), "v1"); !errors.Is(err, video.ErrDispatchDisabled) {
		t.Fatalf("err = %v; want ErrDispatchDisabled", err)
	}
}

func TestAnalyseBacklog(t *testing.T) {
	done := false
	repo := mock.NewVideoRepo(
		&model.Video{VideoID: "a"},
		&model.Video{VideoID: "b", ExplicitContentDetected: &done},
		&model.Video{VideoID: "c"},
	)
	tasks := &mock.MockDispatcher{}
	svc := video.NewBacklogAnalyser(repo, tasks)

	if err := svc.AnalyseBacklog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tasks.AnalyseIDs, []string{"a", "c"}) {
		t.Errorf("enqueued %v; want [a c]", tasks.AnalyseIDs)
	}
}

func TestAnalyseBacklog_Empty(t *testing.T) {
	tasks := &mock.MockDispatcher{}
	svc := video.NewBacklogAnalyser(mock.NewVideoRepo(), tasks)

	if err := svc.AnalyseBacklog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.AnalyseCalled {
		t.Error("nothing should be enqueued")
	}
}

func TestAnalyseBacklog_EnqueueErrorContinues(t *testing.T) {
	repo := mock.NewVideoRepo(&model.Video{VideoID: "a"}, &model.Video{VideoID: "b"})
	tasks := &mock.MockDispatcher{AnalyseErr: errors.New("redis down")}
	svc := video.NewBacklogAnalyser(repo, tasks)

	if err := svc.AnalyseBacklog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks.AnalyseIDs) != 2 {
		t.Errorf("attempted %v; want both videos", tasks.AnalyseIDs)
	}
}

func TestAnalyseBacklog_RepositoryError(t *testing.T) {
	repo := mock.NewVideoRepo()
	repo.ListUnanalysedErr = errors.New("db down")
	svc := video.NewBacklogAnalyser(repo, &mock.MockDispatcher{})

	if err := svc.AnalyseBacklog(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
