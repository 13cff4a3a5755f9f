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

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("cannot parse log record %q: %v", buf.String(), err)
	}
	return m
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		level string
	}{
		{"debug", func(l *SlogLogger) { l.Debug(ctx, "m", "k", "v") }, "DEBUG"},
		{"info", func(l *SlogLogger) { l.Info(ctx, "m", "k", "v") }, "INFO"},
		{"warn", func(l *SlogLogger) { l.Warn(ctx, "m", "k", "v") }, "WARN"},
		{"error", func(l *SlogLogger) { l.Error(ctx, "m", "k", "v") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufLogger()
			tt.log(l)
			rec := lastRecord(t, buf)
			if rec["level"] != tt.level {
				t.Errorf("level = %v, want %v", rec["level"], tt.level)
			}
			if rec["msg"] != "m" || rec["k"] != "v" {
				t.Errorf("unexpected record: %v", rec)
			}
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufLogger()

	child := l.With("component", "test")
	child.Info(context.Background(), "hello")

	rec := lastRecord(t, buf)
	if rec["component"] != "test" {
		t.Errorf("With attribute missing: %v", rec)
	}
}
