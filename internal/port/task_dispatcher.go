package port

import "context"

// TaskDispatcher enqueues asynchronous tasks related to video processing.
type TaskDispatcher interface {
	EnqueueAnalyseVideo(ctx context.Context, videoID string) error
}
