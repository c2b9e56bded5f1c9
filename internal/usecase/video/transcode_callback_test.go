package video_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ankitpatne/clipTag/internal/mock"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func notification(t *testing.T, outputs map[string][]string) []byte {
	t.Helper()
	msg, err := json.Marshal(map[string]any{"Outputs": outputs})
	if err != nil {
		t.Fatal(err)
	}
	body, err := json.Marshal(map[string]string{"Type": "Notification", "Message": string(msg)})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestHandleNotification_SubscriptionConfirmation(t *testing.T) {
	fetcher := &mock.Fetcher{}
	svc := video.NewTranscodeCallback(mock.NewVideoRepo(), fetcher, &mock.Cache{})

	body := []byte(`{"Type":"SubscriptionConfirmation","SubscribeURL":"https://sns.example.com/confirm?token=1"}`)
	out, err := svc.HandleNotification(context.Background(), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != video.MsgSubscriptionConfirmed {
		t.Errorf("message = %q", out.Message)
	}
	if fetcher.ConfirmURL != "https://sns.example.com/confirm?token=1" {
		t.Errorf("confirmed %q", fetcher.ConfirmURL)
	}
}

func TestHandleNotification_ConfirmError(t *testing.T) {
	fetcher := &mock.Fetcher{ConfirmErr: errors.New("status 500")}
	svc := video.NewTranscodeCallback(mock.NewVideoRepo(), fetcher, &mock.Cache{})

	body := []byte(`{"Type":"SubscriptionConfirmation","SubscribeURL":"https://sns.example.com/confirm"}`)
	if _, err := svc.HandleNotification(context.Background(), body); err == nil {
		t.Fatal("expected error")
	}
}

func TestHandleNotification_AttachesStreamingURL(t *testing.T) {
	repo := mock.NewVideoRepo(&model.Video{VideoID: "abc", StorageKey: video.StorageKey("abc")})
	cache := &mock.Cache{VideoOut: []byte("stale")}
	svc := video.NewTranscodeCallback(repo, &mock.Fetcher{}, cache)

	streamURL := "https://cdn.example.com/hls/abc.m3u8"
	body := notification(t, map[string][]string{"HLS_GROUP": {streamURL, "https://cdn.example.com/hls/abc_720.m3u8"}})

	for i := 0; i < 2; i++ {
		out, err := svc.HandleNotification(context.Background(), body)
		if err != nil {
			t.Fatalf("delivery %d: unexpected error: %v", i+1, err)
		}
		if out.Message != video.MsgVideoUpdated {
			t.Errorf("delivery %d: message = %q", i+1, out.Message)
		}
		stored := repo.Video("abc")
		if stored.StreamingURL == nil || *stored.StreamingURL != streamURL {
			t.Errorf("delivery %d: streaming url = %v", i+1, stored.StreamingURL)
		}
	}
	if len(cache.DeletedIDs) != 2 || cache.DeletedIDs[0] != "abc" {
		t.Errorf("invalidated = %v", cache.DeletedIDs)
	}
}

func TestHandleNotification_NoStreamingURL(t *testing.T) {
	repo := mock.NewVideoRepo(&model.Video{VideoID: "abc"})
	svc := video.NewTranscodeCallback(repo, &mock.Fetcher{}, &mock.Cache{})

	tests := []struct {
		name string
		body []byte
	}{
		{"no message", []byte(`{"Type":"Notification"}`)},
		{"no hls group", notification(t, map[string][]string{"MP4_GROUP": {"https://cdn.example.com/abc.mp4"}})},
		{"empty hls group", notification(t, map[string][]string{"HLS_GROUP": {}})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.HandleNotification(context.Background(), tc.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Message != video.MsgNotificationProcessed {
				t.Errorf("message = %q", out.Message)
			}
		})
	}
	if repo.StreamingURLs != nil {
		t.Errorf("no record should change: %v", repo.StreamingURLs)
	}
}

func TestHandleNotification_UnknownVideo(t *testing.T) {
	svc := video.NewTranscodeCallback(mock.NewVideoRepo(), &mock.Fetcher{}, &mock.Cache{})

	body := notification(t, map[string][]string{"HLS_GROUP": {"https://cdn.example.com/hls/missing.m3u8"}})
	_, err := svc.HandleNotification(context.Background(), body)
	if !errors.Is(err, video.ErrRecordNotFound) {
		t.Fatalf("err = %v; want ErrRecordNotFound", err)
	}
}

func TestHandleNotification_Malformed(t *testing.T) {
	svc := video.NewTranscodeCallback(mock.NewVideoRepo(), &mock.Fetcher{}, &mock.Cache{})

	tests := []struct {
		name string
		body []byte
	}{
		{"not json", []byte(`{oops`)},
		{"message not json", []byte(`{"Type":"Notification","Message":"plain text"}`)},
		{"confirmation without url", []byte(`{"Type":"SubscriptionConfirmation"}`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.HandleNotification(context.Background(), tc.body)
			if !errors.Is(err, video.ErrNotificationParse) {
				t.Errorf("err = %v; want ErrNotificationParse", err)
			}
		})
	}
}
