package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ankitpatne/clipTag/internal/mock"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantAck bool
	}{
		{"processed", nil, true},
		{"malformed", fmt.Errorf("%w: bad json", video.ErrNotificationParse), true},
		{"unknown video", fmt.Errorf("video %q: %w", "abc", video.ErrRecordNotFound), true},
		{"transient", errors.New("db down"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockTranscodeCallback{Out: port.CallbackOutput{Message: video.MsgVideoUpdated}, Err: tc.err}
			l := &Listener{svc: svc}

			if got := l.handle(context.Background(), "m1", []byte(`{"Type":"Notification"}`)); got != tc.wantAck {
				t.Errorf("ack = %v; want %v", got, tc.wantAck)
			}
			if string(svc.Body) != `{"Type":"Notification"}` {
				t.Errorf("body = %q", svc.Body)
			}
		})
	}
}

// signallingCallback closes done after the first notification.
type signallingCallback struct {
	once sync.Once
	done chan struct{}
	body []byte
}

func (s *signallingCallback) HandleNotification(ctx context.Context, body []byte) (port.CallbackOutput, error) {
	s.once.Do(func() {
		s.body = body
		close(s.done)
	})
	return port.CallbackOutput{Message: video.MsgVideoUpdated}, nil
}

func TestListen_AcksProcessedMessage(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial fake server: %v", err)
	}
	defer conn.Close()

	client, err := pubsub.NewClient(ctx, "cliptag-test", option.WithGRPCConn(conn))
	if err != nil {
		t.Fatalf("pubsub client: %v", err)
	}
	defer client.Close()

	topic, err := client.CreateTopic(ctx, "transcode")
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if _, err := client.CreateSubscription(ctx, "transcode-sub", pubsub.SubscriptionConfig{Topic: topic}); err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	payload := []byte(`{"Type":"Notification","Message":"{}"}`)
	if _, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}
	topic.Stop()

	cb := &signallingCallback{done: make(chan struct{})}
	l := NewListener(client, "transcode-sub", cb)

	listenCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- l.Listen(listenCtx) }()

	select {
	case <-cb.done:
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("notification was not delivered")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		msgs := srv.Messages()
		if len(msgs) == 1 && msgs[0].Acks == 1 {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("message not acked: %+v", msgs)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Listen: %v", err)
	}
	if string(cb.body) != string(payload) {
		t.Errorf("body = %q; want %q", cb.body, payload)
	}
}
