package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "localhost:9191")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env-source")
	t.Setenv("AUTH_TOKEN_DURATION", "45m")
	t.Setenv("WORKERS_SYNC_INTERVAL", "10s")
	t.Setenv("CLIENT_BASE_URL", "http://env-host:9191")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9191", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://env-source", cfg.Storage.DB.DSN)
	assert.Equal(t, 45*time.Minute, cfg.Auth.TokenDuration)
	assert.Equal(t, 10*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, "http://env-host:9191", cfg.Client.BaseURL)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.Storage.DB.DSN)
}
