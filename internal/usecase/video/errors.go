package video

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	ErrRecordNotFound     = errors.New("video record not found")
	ErrDownload           = errors.New("could not download video")
	ErrAnnotationTimeout  = errors.New("annotation timed out")
	ErrGeneration         = errors.New("text generation failed")
	ErrNotificationParse  = errors.New("malformed notification")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrDispatchDisabled   = errors.New("task dispatching is disabled")
)
