package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, getLogLevel(in), in)
	}
}

func TestBusinessLogsCarryFields(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.DebugMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.LogSeatCollision(context.Background(), "flight-1", "3-5")

	out := buf.String()
	assert.Contains(t, out, `"msg":"Seat Collision"`)
	assert.Contains(t, out, `"seat":"3-5"`)
	assert.Contains(t, out, `"level":"WARN"`)
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error")

	l.LogReservationCancelled(context.Background(), "r-1", "u-1")

	assert.Empty(t, buf.String())
}
