package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.ApiServicePort)
	assert.Equal(t, "db", cfg.PostgreSQLHost)
	assert.Equal(t, int64(5432), cfg.PostgreSQLPort)
	assert.Equal(t, "redis", cfg.RedisHost)
	assert.Equal(t, "/vol/web/media", cfg.MediaDir)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxImageSize)
	assert.Equal(t, int64(30), cfg.LoginRateLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_SERVICE_PORT", "9000")
	t.Setenv("POSTGRESQL_PORT", "5433")
	t.Setenv("MEDIA_DIR", "/tmp/media")
	t.Setenv("LOGIN_RATE_LIMIT", "5")

	cfg := LoadConfig()

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9000", cfg.ApiServicePort)
	assert.Equal(t, int64(5433), cfg.PostgreSQLPort)
	assert.Equal(t, "/tmp/media", cfg.MediaDir)
	assert.Equal(t, int64(5), cfg.LoginRateLimit)
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("MAX_IMAGE_SIZE", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, int64(5*1024*1024), cfg.MaxImageSize)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			assert.Equal(t, tt.want, getLogLevel())
		})
	}
}
