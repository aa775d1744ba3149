package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestConditionalSourceHandler_OnlyConfiguredLevelsCarrySource(t *testing.T) {
	var buf bytes.Buffer
	handler := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelWarn, slog.LevelError)
	log := slog.New(handler).With("investment_id", "inv-1")

	log.Info("deposit confirmed")
	assert.NotContains(t, buf.String(), "source=")
	assert.Contains(t, buf.String(), "investment_id=inv-1")

	buf.Reset()
	log.Warn("payout rejected")
	assert.Contains(t, buf.String(), "source=")
}

func TestSlogLogger_WithAndNamed(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	log.Named("scheduler").With("job", "apy").Infow("refreshed", "value", "4.2")

	out := buf.String()
	assert.Contains(t, out, "logger=scheduler")
	assert.Contains(t, out, "job=apy")
	assert.Contains(t, out, "value=4.2")
}
