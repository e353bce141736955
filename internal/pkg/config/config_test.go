package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "kidtrack", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Tracking.IntervalMs)
	assert.Equal(t, 5.0, cfg.Tracking.MinDistanceMeters)
	assert.Equal(t, "redis", cfg.History.Backend)
	assert.Equal(t, int64(10000), cfg.History.MaxSamples)
	assert.Equal(t, 720, cfg.History.RetentionHours)
	assert.False(t, cfg.NSQ.Enabled())
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("HISTORY_BACKEND", "Postgres")
	t.Setenv("NSQD_ADDRESS", "nsqd:4150")
	t.Setenv("NSQ_LOOKUPD_ADDRESSES", "lookupd-1:4161, lookupd-2:4161")
	t.Setenv("TRACKING_MIN_DISTANCE_METERS", "12.5")

	cfg := InitConfig("")

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.History.Backend)
	assert.True(t, cfg.NSQ.Enabled())
	assert.Equal(t, []string{"lookupd-1:4161", "lookupd-2:4161"}, cfg.NSQ.LookupdAddresses)
	assert.Equal(t, 12.5, cfg.Tracking.MinDistanceMeters)
}

func TestInitConfig_LocalFile(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("JWT_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "local.env")
	content := "SERVER_PORT=9200\nJWT_SECRET=from-file\nHISTORY_MAX_SAMPLES=25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := InitConfig(path)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, int64(25), cfg.History.MaxSamples)
	// environment wins over the file
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestInitConfig_MissingFile(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	cfg := InitConfig(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 8080, cfg.Server.Port)
}
