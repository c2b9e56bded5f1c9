package video

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
)

const (
	notificationSubscriptionConfirmation = "SubscriptionConfirmation"
	hlsOutputGroup                       = "HLS_GROUP"
)

// envelope is the SNS delivery wrapping a transcode job notification.
type envelope struct {
	Type         string `json:"Type"`
	Message      string `json:"Message"`
	SubscribeURL string `json:"SubscribeURL"`
}

type jobMessage struct {
	Outputs map[string][]string `json:"Outputs"`
}

func parseEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: envelope: %v", ErrNotificationParse, err)
	}
	if env.Type == notificationSubscriptionConfirmation && env.SubscribeURL == "" {
		return envelope{}, fmt.Errorf("%w: subscription confirmation without SubscribeURL", ErrNotificationParse)
	}
	return env, nil
}

// streamingURL returns the first HLS output of the job message, or "" if the
// job produced none.
func streamingURL(message string) (string, error) {
	var msg jobMessage
	if err := json.Unmarshal([]byte(message), &msg); err != nil {
		return "", fmt.Errorf("%w: message: %v", ErrNotificationParse, err)
	}
	outputs := msg.Outputs[hlsOutputGroup]
	if len(outputs) == 0 {
		return "", nil
	}
	return outputs[0], nil
}

// videoIDFromStreamingURL takes the last path segment of the URL up to its first dot.
func videoIDFromStreamingURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: streaming url %q: %v", ErrNotificationParse, raw, err)
	}
	if u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return "", fmt.Errorf("%w: streaming url %q has no file name", ErrNotificationParse, raw)
	}

	id, _, _ := strings.Cut(path.Base(u.Path), ".")
	if id == "" {
		return "", fmt.Errorf("%w: streaming url %q has no video id", ErrNotificationParse, raw)
	}
	return id, nil
}
