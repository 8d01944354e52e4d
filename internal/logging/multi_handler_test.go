package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureHandler struct {
	level    slog.Level
	messages []string
}

func (h *captureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	h.messages = append(h.messages, record.Message)
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	info := &captureHandler{level: slog.LevelInfo}
	errs := &captureHandler{level: slog.LevelError}
	multi := NewMultiHandler(info, errs)

	ctx := context.Background()
	assert.True(t, multi.Enabled(ctx, slog.LevelInfo))
	assert.True(t, multi.Enabled(ctx, slog.LevelError))
	assert.False(t, multi.Enabled(ctx, slog.LevelDebug))

	require.NoError(t, multi.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "startup", 0)))
	require.NoError(t, multi.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)))

	assert.Equal(t, []string{"startup", "boom"}, info.messages)
	assert.Equal(t, []string{"boom"}, errs.messages)
}
