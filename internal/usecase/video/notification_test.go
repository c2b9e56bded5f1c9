package video

import (
	"errors"
	"testing"
)

func TestStreamingURL(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantErr bool
	}{
		{"first hls output", `{"Outputs":{"HLS_GROUP":["https://cdn/a.m3u8","https://cdn/b.m3u8"]}}`, "https://cdn/a.m3u8", false},
		{"no outputs", `{}`, "", false},
		{"other groups only", `{"Outputs":{"FILE_GROUP":["https://cdn/a.mp4"]}}`, "", false},
		{"not json", `nope`, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := streamingURL(tc.message)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		})
	}
}

func TestVideoIDFromStreamingURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://cdn.example.com/hls/abc.m3u8", "abc", false},
		{"https://cdn.example.com/hls/abc.720p.m3u8", "abc", false},
		{"s3://bucket/out/abc", "abc", false},
		{"https://cdn.example.com/hls/", "", true},
		{"https://cdn.example.com", "", true},
		{"https://cdn.example.com/hls/.m3u8", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			got, err := videoIDFromStreamingURL(tc.url)
			if tc.wantErr {
				if !errors.Is(err, ErrNotificationParse) {
					t.Fatalf("err = %v; want ErrNotificationParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		})
	}
}

func TestParseEnvelope(t *testing.T) {
	env, err := parseEnvelope([]byte(`{"Type":"Notification","Message":"{}"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Type != "Notification" || env.Message != "{}" {
		t.Errorf("envelope = %+v", env)
	}

	if _, err := parseEnvelope([]byte(`[]`)); !errors.Is(err, ErrNotificationParse) {
		t.Errorf("err = %v; want ErrNotificationParse", err)
	}
}
