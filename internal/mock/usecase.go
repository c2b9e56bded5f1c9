package mock

import (
	"context"
	"io"

	"github.com/ankitpatne/clipTag/internal/port"
)

// MockVideoUploader implements port.VideoUploader for tests.
type MockVideoUploader struct {
	Out    port.UploadVideoOutput
	Err    error
	Called bool
	In     port.UploadVideoInput
	Body   []byte
}

func (m *MockVideoUploader) UploadVideo(ctx context.Context, in port.UploadVideoInput) (port.UploadVideoOutput, error) {
	m.Called = true
	m.In = in
	if in.File != nil {
		m.Body, _ = io.ReadAll(in.File)
	}
	return m.Out, m.Err
}

// MockAnalysisRunner implements port.AnalysisRunner for tests.
type MockAnalysisRunner struct {
	Out    port.AnalysisOutput
	Err    error
	Called bool
	ID     string
}

func (m *MockAnalysisRunner) RunAnalysis(ctx context.Context, videoID string) (port.AnalysisOutput, error) {
	m.Called = true
	m.ID = videoID
	return m.Out, m.Err
}

// MockAnalysisScheduler implements port.AnalysisScheduler for tests.
type MockAnalysisScheduler struct {
	Err    error
	Called bool
	ID     string
}

func (m *MockAnalysisScheduler) ScheduleAnalysis(ctx context.Context, videoID string) error {
	m.Called = true
	m.ID = videoID
	return m.Err
}

// MockModerationLister implements port.ModerationLister for tests.
type MockModerationLister struct {
	Out    []port.FlaggedVideoOutput
	Err    error
	Called bool
}

func (m *MockModerationLister) ListFlagged(ctx context.Context) ([]port.FlaggedVideoOutput, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockVideoGetter implements port.VideoGetter for tests.
type MockVideoGetter struct {
	Out    *port.VideoOutput
	Err    error
	Called bool
	ID     string
}

func (m *MockVideoGetter) GetVideo(ctx context.Context, videoID string) (*port.VideoOutput, error) {
	m.Called = true
	m.ID = videoID
	return m.Out, m.Err
}

// MockVideoLister implements port.VideoLister for tests.
type MockVideoLister struct {
	Out    []port.VideoOutput
	Err    error
	Called bool
}

func (m *MockVideoLister) ListVideos(ctx context.Context) ([]port.VideoOutput, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockVideoSearcher implements port.VideoSearcher for tests.
type MockVideoSearcher struct {
	Out    port.SearchVideosOutput
	Err    error
	Called bool
	In     port.SearchVideosInput
}

func (m *MockVideoSearcher) SearchVideos(ctx context.Context, in port.SearchVideosInput) (port.SearchVideosOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockTranscodeCallback implements port.TranscodeCallback for tests.
type MockTranscodeCallback struct {
	Out    port.CallbackOutput
	Err    error
	Called bool
	Body   []byte
}

func (m *MockTranscodeCallback) HandleNotification(ctx context.Context, body []byte) (port.CallbackOutput, error) {
	m.Called = true
	m.Body = body
	return m.Out, m.Err
}

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data []byte
	Etag string
	Err  error

	Called bool
	Getter port.VideoGetter
	ID     string
}

func (m *MockHTTPRenderer) RenderGetVideo(ctx context.Context, getter port.VideoGetter, videoID string) ([]byte, string, error) {
	m.Called = true
	m.Getter = getter
	m.ID = videoID
	return m.Data, m.Etag, m.Err
}
