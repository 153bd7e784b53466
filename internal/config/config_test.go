package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(MaxUploadSize), cfg.Upload.MaxSize)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("GEOPHOTO_SERVER_ADDR", ":9090")
	t.Setenv("GEOPHOTO_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/geophoto.yaml")
	assert.Error(t, err)
}
