package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeAnalyseVideo = "video:analyse"

type AnalyseVideoPayload struct {
	VideoID string `json:"video_id"`
}

// NewAnalyseVideoTask creates an Asynq task for analysing a video by ID.
func NewAnalyseVideoTask(videoID string) (*asynq.Task, error) {
	data, err := json.Marshal(AnalyseVideoPayload{VideoID: videoID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal analyse-video payload: %w", err)
	}
	return asynq.NewTask(TypeAnalyseVideo, data), nil
}

// ParseAnalyseVideoPayload parses the task payload to AnalyseVideoPayload.
func ParseAnalyseVideoPayload(t *asynq.Task) (AnalyseVideoPayload, error) {
	var p AnalyseVideoPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return AnalyseVideoPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if p.VideoID == "" {
		return AnalyseVideoPayload{}, fmt.Errorf("payload has no video_id")
	}
	return p, nil
}
