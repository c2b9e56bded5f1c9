package notification

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

// receiver is the subset of *pubsub.Subscription used by the listener.
type receiver interface {
	Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error
}

// Listener pulls transcode notifications from a Pub/Sub subscription and
// hands each one to the callback use case.
type Listener struct {
	sub receiver
	svc port.TranscodeCallback
}

// NewClient opens a Pub/Sub client. An empty credentialsFile falls back to
// application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*pubsub.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub client for project %q: %w", projectID, err)
	}
	return client, nil
}

func NewListener(client *pubsub.Client, subscriptionID string, svc port.TranscodeCallback) *Listener {
	return &Listener{sub: client.Subscription(subscriptionID), svc: svc}
}

// Listen blocks until ctx is done or the subscription fails.
func (l *Listener) Listen(ctx context.Context) error {
	logger.Info(ctx, "listening for transcode notifications...")
	err := l.sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if l.handle(ctx, m.ID, m.Data) {
			m.Ack()
			return
		}
		m.Nack()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("receive transcode notifications: %w", err)
	}
	return nil
}

// handle reports whether the message is settled. Malformed payloads and
// unknown videos will never succeed, so they are acked as well.
func (l *Listener) handle(ctx context.Context, msgID string, data []byte) bool {
	out, err := l.svc.HandleNotification(ctx, data)
	switch {
	case err == nil:
		logger.Infof(ctx, "✅  Message %s: %s", msgID, out.Message)
		return true
	case errors.Is(err, video.ErrNotificationParse), errors.Is(err, video.ErrRecordNotFound):
		logger.Warnf(ctx, "❌  Dropping message %s: %v", msgID, err)
		return true
	default:
		logger.Errorf(ctx, "❌  Message %s will be redelivered: %v", msgID, err)
		return false
	}
}
