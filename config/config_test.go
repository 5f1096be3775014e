package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 256, cfg.SendBuffer)
	assert.Equal(t, int64(65536), cfg.MaxMessageSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SEND_BUFFER", "16")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Parse()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 16, cfg.SendBuffer)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric buffer", key: "SEND_BUFFER", value: "lots"},
		{name: "zero buffer", key: "SEND_BUFFER", value: "0"},
		{name: "negative message size", key: "MAX_MESSAGE_SIZE", value: "-1"},
		{name: "bad duration", key: "SHUTDOWN_TIMEOUT", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Parse()

			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoad_MissingDotEnv(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}

func TestConfig_Level(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, Config{LogLevel: in}.Level(), "level %q", in)
	}
}
