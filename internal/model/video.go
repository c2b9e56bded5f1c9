package model

import "time"

type Video struct {
	ID                      int64          `json:"-"`
	VideoID                 string         `json:"video_id"`
	StorageKey              string         `json:"storage_key"`
	Duration                float64        `json:"duration"`
	Title                   *string        `json:"title"`
	Description             *string        `json:"description"`
	Tags                    Tags           `json:"tags"`
	ExplicitFrames          ExplicitFrames `json:"explicit_content"`
	ExplicitContentDetected *bool          `json:"explicit_content_detected"`
	Transcription           *string        `json:"transcription"`
	StreamingURL            *string        `json:"streaming_url"`
	AIGeneratedTitle        *string        `json:"ai_generated_title"`
	AIGeneratedDescription  *string        `json:"ai_generated_description"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// Analysis groups every field an analysis run replaces in a single commit.
type Analysis struct {
	Tags                   Tags
	ExplicitFrames         ExplicitFrames
	Transcription          string
	AIGeneratedTitle       string
	AIGeneratedDescription string
}

// SearchDocument is the projection of a Video stored in the search index.
type SearchDocument struct {
	VideoID                string         `json:"video_id"`
	Title                  string         `json:"title"`
	Description            string         `json:"description"`
	Tags                   Tags           `json:"tags"`
	ExplicitContent        ExplicitFrames `json:"explicit_content"`
	Transcription          string         `json:"transcription"`
	AIGeneratedTitle       string         `json:"ai_generated_title"`
	AIGeneratedDescription string         `json:"ai_generated_description"`
	S3URL                  string         `json:"s3_url"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SearchDocument projects the record, resolving its storage key to publicURL.
func (v *Video) SearchDocument(publicURL string) SearchDocument {
	tags := v.Tags
	if tags == nil {
		tags = Tags{}
	}
	frames := v.ExplicitFrames
	if frames == nil {
		frames = ExplicitFrames{}
	}
	return SearchDocument{
		VideoID:                v.VideoID,
		Title:                  deref(v.Title),
		Description:            deref(v.Description),
		Tags:                   tags,
		ExplicitContent:        frames,
		Transcription:          deref(v.Transcription),
		AIGeneratedTitle:       deref(v.AIGeneratedTitle),
		AIGeneratedDescription: deref(v.AIGeneratedDescription),
		S3URL:                  publicURL,
	}
}
