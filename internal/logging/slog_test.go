package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		level string
	}{
		{"info", func(l *SlogLogger) { l.Info(ctx, "m") }, "INFO"},
		{"warn", func(l *SlogLogger) { l.Warn(ctx, "m") }, "WARN"},
		{"error", func(l *SlogLogger) { l.Error(ctx, "m") }, "ERROR"},
		{"debug", func(l *SlogLogger) { l.Debug(ctx, "m") }, "DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, buf := newBufLogger()
			tc.log(l)
			rec := decodeLine(t, buf)
			if rec["level"] != tc.level {
				t.Fatalf("level = %v, want %v", rec["level"], tc.level)
			}
			if rec["msg"] != "m" {
				t.Fatalf("msg = %v, want m", rec["msg"])
			}
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufLogger()

	child := l.With("module", "test")
	child.Info(context.Background(), "hello", "k", "v")

	rec := decodeLine(t, buf)
	if rec["module"] != "test" {
		t.Fatalf("module attr missing: %v", rec)
	}
	if rec["k"] != "v" {
		t.Fatalf("per-call attr missing: %v", rec)
	}
}
