package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name             string
		level            slog.Level
		showSourceLevels []slog.Level
		shouldHaveSource bool
	}{
		{
			name:             "info is quiet by default",
			level:            slog.LevelInfo,
			showSourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			shouldHaveSource: false,
		},
		{
			name:             "warn carries source",
			level:            slog.LevelWarn,
			showSourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			shouldHaveSource: true,
		},
		{
			name:             "error carries source",
			level:            slog.LevelError,
			showSourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			shouldHaveSource: true,
		},
		{
			name:             "development mode shows info source",
			level:            slog.LevelInfo,
			showSourceLevels: []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError},
			shouldHaveSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.showSourceLevels...))

			log.Log(context.Background(), tt.level, "cleanup finished")

			assert.Equal(t, tt.shouldHaveSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).With("job", "account-cleanup")

	log.Info("run completed")

	assert.Contains(t, buf.String(), "job=account-cleanup")
	assert.NotContains(t, buf.String(), "source=")
}

func TestConditionalSourceHandler_RespectsBaseLevel(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler := NewConditionalSourceHandler(base, slog.LevelError)

	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
