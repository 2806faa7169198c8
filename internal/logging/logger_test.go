package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"seatbooking/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	appCfg := config.AppConfig{
		Name:        "seatbooking",
		Environment: "test",
		Version:     "1.0.0",
	}

	t.Run("DefaultStdout", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{}, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		logger, closer, err := New(config.LoggingConfig{Output: "file", FilePath: path}, appCfg)
		require.NoError(t, err)
		require.NotNil(t, closer)
		logger.Info().Msg("hello")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("FileWithoutPath", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "file"}, appCfg)
		assert.Error(t, err)
	})

	t.Run("UnknownOutput", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "syslog"}, appCfg)
		assert.Error(t, err)
	})

	t.Run("LevelAndBaseFields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, config.LoggingConfig{Level: "warn"}, appCfg)
		logger.Info().Msg("dropped")
		assert.Zero(t, buf.Len())

		Component(logger, "booking").Warn().Int64("seat_id", 3).Msg("kept")
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "seatbooking", entry["app"])
		assert.Equal(t, "booking", entry["component"])
		assert.EqualValues(t, 3, entry["seat_id"])
	})
}

func TestComponentNil(t *testing.T) {
	l := Component(nil, "x")
	require.NotNil(t, l)
	l.Info().Msg("no panic")
}
