package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/dmitrymomot/sealkit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates JSON logger", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decode(t, buf)["msg"])
	})

	t.Run("unknown level name keeps default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("verbose"))
		log.Debug("dropped")
		assert.Empty(t, buf.String())
		log.Info("kept")
		assert.NotEmpty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.Component("otpguard")))
		log.Info("msg")
		assert.Equal(t, "otpguard", decode(t, buf)["component"])
	})

	t.Run("context extractor survives With", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				return slog.String("trace", "t-1"), true
			}),
		).With(logger.Operation("verify"))

		log.InfoContext(context.Background(), "msg")
		entry := decode(t, buf)
		assert.Equal(t, "t-1", entry["trace"])
		assert.Equal(t, "verify", entry["op"])
	})
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	cfg := logger.Config{Level: "debug", Format: "JSON"}
	log := logger.New(append(cfg.Options(), logger.WithOutput(buf))...)
	log.Debug("hello")
	assert.Equal(t, "DEBUG", decode(t, buf)["level"])
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		logger.New(logger.WithFormat("xml"))
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.AccountID(""))
	assert.Equal(t, slog.String("account_id", "acc-1"), logger.AccountID("acc-1"))
	assert.Equal(t, slog.Int64("counter", 7), logger.Counter(7))
	assert.Equal(t, slog.Int64("attempts", 3), logger.Attempts(3))
}

func TestNop(t *testing.T) {
	t.Parallel()
	log := logger.Nop()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
