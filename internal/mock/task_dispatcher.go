package mock

import "context"

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	AnalyseCalled bool
	AnalyseIDs    []string
	AnalyseErr    error
}

func (m *MockDispatcher) EnqueueAnalyseVideo(ctx context.Context, videoID string) error {
	m.AnalyseCalled = true
	m.AnalyseIDs = append(m.AnalyseIDs, videoID)
	return m.AnalyseErr
}
