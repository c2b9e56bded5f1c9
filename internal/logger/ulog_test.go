package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ankitpatne/clipTag/internal/api_context"
	"go.opentelemetry.io/otel/trace"
)

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	base := newBaseHandler(buf, "json", &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(userAttrHandler{h: base}).With("svc", "cliptag")
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", buf.String(), err)
	}
	return m
}

func TestUserAttrHandler_System(t *testing.T) {
	var buf bytes.Buffer
	prev := std
	std = captureLogger(&buf)
	defer func() { std = prev }()

	Infof(context.Background(), "hello %s", "world")

	line := decodeLine(t, &buf)
	if line["msg"] != "hello world" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["uid"] != "system" || line["svc"] != "cliptag" {
		t.Errorf("attrs = %v", line)
	}
	if _, ok := line["trace_id"]; ok {
		t.Error("trace_id should be absent without a span")
	}
}

func TestUserAttrHandler_UserAndTrace(t *testing.T) {
	var buf bytes.Buffer
	prev := std
	std = captureLogger(&buf)
	defer func() { std = prev }()

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	ctx := context.WithValue(context.Background(), api_context.AuthUserIDKey, "user-7")
	ctx = trace.ContextWithSpanContext(ctx, sc)
	Warn(ctx, "careful")

	line := decodeLine(t, &buf)
	if line["uid"] != "user-7" {
		t.Errorf("uid = %v", line["uid"])
	}
	if line["trace_id"] != "0102030405060708090a0b0c0d0e0f10" || line["span_id"] != "0102030405060708" {
		t.Errorf("trace attrs = %v / %v", line["trace_id"], line["span_id"])
	}
	if line["level"] != "WARN" {
		t.Errorf("level = %v", line["level"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in).Level(); got != want {
			t.Errorf("parseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}
