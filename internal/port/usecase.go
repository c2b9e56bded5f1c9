package port

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ankitpatne/clipTag/internal/model"
)

type IDGen func() string

// VideoUploader stores a new video and creates its record and search document.
type VideoUploader interface {
	UploadVideo(ctx context.Context, in UploadVideoInput) (UploadVideoOutput, error)
}
type UploadVideoInput struct {
	Title       string    `json:"title" validate:"max=255"`
	Description string    `json:"description" validate:"max=5000"`
	File        io.Reader `json:"-"`
	Size        int64     `json:"size" validate:"gt=0"`
}
type UploadVideoOutput struct {
	VideoID      string  `json:"video_id"`
	StreamingURL *string `json:"streaming_url"`
}

// VideoAnalyser runs the analysis pipeline for one video.
type VideoAnalyser interface {
	AnalyseVideo(ctx context.Context, videoID string) (AnalysisOutput, error)
}
type AnalysisOutput struct {
	VideoID                string               `json:"video_id"`
	Title                  string               `json:"title"`
	Description            string               `json:"description"`
	AIGeneratedTitle       string               `json:"ai_generated_title"`
	AIGeneratedDescription string               `json:"ai_generated_description"`
	Tags                   model.Tags           `json:"tags"`
	ExplicitContent        model.ExplicitFrames `json:"explicit_content"`
	Transcription          string               `json:"transcription"`
}

// AnalysisRunner serialises analyses per video and publishes their results.
type AnalysisRunner interface {
	RunAnalysis(ctx context.Context, videoID string) (AnalysisOutput, error)
}

// AnalysisScheduler queues an analysis to be run by the worker.
type AnalysisScheduler interface {
	ScheduleAnalysis(ctx context.Context, videoID string) error
}

// BacklogAnalyser queues analyses for every video never analysed.
type BacklogAnalyser interface {
	AnalyseBacklog(ctx context.Context) error
}

// ModerationLister returns the videos flagged for moderation.
type ModerationLister interface {
	ListFlagged(ctx context.Context) ([]FlaggedVideoOutput, error)
}
type FlaggedVideoOutput struct {
	VideoID         string               `json:"video_id"`
	S3URL           string               `json:"s3_url"`
	ExplicitContent model.ExplicitFrames `json:"explicit_content"`
}

// VideoGetter retrieves a single video record.
type VideoGetter interface {
	GetVideo(ctx context.Context, videoID string) (*VideoOutput, error)
}

// VideoLister retrieves every video record, newest first.
type VideoLister interface {
	ListVideos(ctx context.Context) ([]VideoOutput, error)
}
type VideoOutput struct {
	VideoID                 string               `json:"video_id"`
	S3URL                   string               `json:"s3_url"`
	Title                   *string              `json:"title"`
	Description             *string              `json:"description"`
	Tags                    model.Tags           `json:"tags"`
	ExplicitContent         model.ExplicitFrames `json:"explicit_content"`
	Transcription           *string              `json:"transcription"`
	AIGeneratedTitle        *string              `json:"ai_generated_title"`
	AIGeneratedDescription  *string              `json:"ai_generated_description"`
	StreamingURL            *string              `json:"streaming_url"`
	ExplicitContentDetected *bool                `json:"explicit_content_detected"`
}

// VideoSearcher runs full-text queries against the search index.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, in SearchVideosInput) (SearchVideosOutput, error)
}
type SearchVideosInput struct {
	Query string `json:"query" validate:"required,max=512"`
}
type SearchVideosOutput struct {
	Results []json.RawMessage `json:"results"`
}

// SearchReindexer rebuilds the search index from the video records.
type SearchReindexer interface {
	Reindex(ctx context.Context) error
}

// TranscodeCallback consumes transcode completion notifications.
type TranscodeCallback interface {
	HandleNotification(ctx context.Context, body []byte) (CallbackOutput, error)
}
type CallbackOutput struct {
	Message string `json:"message"`
}
