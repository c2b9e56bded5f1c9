package video

import (
	"context"
	"fmt"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

const (
	MsgSubscriptionConfirmed = "Subscription confirmed"
	MsgNotificationProcessed = "Notification processed"
	MsgVideoUpdated          = "Video updated successfully"
)

type transcodeCallbackSrv struct {
	repo    port.VideoRepository
	fetcher port.Fetcher
	cache   port.Cache
}

// compile-time check: *transcodeCallbackSrv must satisfy port.TranscodeCallback
var _ port.TranscodeCallback = (*transcodeCallbackSrv)(nil)

func NewTranscodeCallback(repo port.VideoRepository, fetcher port.Fetcher, cache port.Cache) port.TranscodeCallback {
	return &transcodeCallbackSrv{repo, fetcher, cache}
}

// HandleNotification attaches the HLS output of a finished transcode job to its
// video. Redelivered notifications overwrite the streaming URL with the same value.
func (s *transcodeCallbackSrv) HandleNotification(ctx context.Context, body []byte) (port.CallbackOutput, error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return port.CallbackOutput{}, err
	}

	if env.Type == notificationSubscriptionConfirmation {
		logger.Infof(ctx, "confirming notification subscription...")
		if err := s.fetcher.Confirm(ctx, env.SubscribeURL); err != nil {
			return port.CallbackOutput{}, fmt.Errorf("could not confirm subscription: %w", err)
		}
		return port.CallbackOutput{Message: MsgSubscriptionConfirmed}, nil
	}

	if env.Message == "" {
		return port.CallbackOutput{Message: MsgNotificationProcessed}, nil
	}

	streamURL, err := streamingURL(env.Message)
	if err != nil {
		return port.CallbackOutput{}, err
	}
	if streamURL == "" {
		logger.Debug(ctx, "notification carries no streaming url, nothing to do")
		return port.CallbackOutput{Message: MsgNotificationProcessed}, nil
	}

	videoID, err := videoIDFromStreamingURL(streamURL)
	if err != nil {
		return port.CallbackOutput{}, err
	}

	logger.Infof(ctx, "attaching streaming url to video %q...", videoID)
	if err := s.repo.SetStreamingURL(ctx, videoID, streamURL); err != nil {
		return port.CallbackOutput{}, err
	}

	if err := s.cache.DeleteVideoDetails(ctx, videoID); err != nil {
		logger.Warnf(ctx, "failed to delete cached details of video %q: %v", videoID, err)
	}
	if err := s.cache.DeleteEtagVideoDetails(ctx, videoID); err != nil {
		logger.Warnf(ctx, "failed to delete cached etag of video %q: %v", videoID, err)
	}

	return port.CallbackOutput{Message: MsgVideoUpdated}, nil
}
