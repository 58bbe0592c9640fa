package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"IMAGEPAIR_PORT", "IMAGEPAIR_JPEG_QUALITY", "IMAGEPAIR_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8888", cfg.Port)
	assert.Equal(t, 95, cfg.JPEGQuality)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IMAGEPAIR_PORT", "3000")
	t.Setenv("IMAGEPAIR_JPEG_QUALITY", "80")
	t.Setenv("IMAGEPAIR_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "quality not a number", key: "IMAGEPAIR_JPEG_QUALITY", value: "high"},
		{name: "quality too large", key: "IMAGEPAIR_JPEG_QUALITY", value: "101"},
		{name: "quality zero", key: "IMAGEPAIR_JPEG_QUALITY", value: "0"},
		{name: "unknown log level", key: "IMAGEPAIR_LOG_LEVEL", value: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
