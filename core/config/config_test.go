package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "portal", cfg.Database.Profile)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "/run/dump1090-mutability", cfg.Watcher.Dir)
	assert.Equal(t, `^history_\d+\.json$`, cfg.Watcher.Pattern)
	assert.Equal(t, 16, cfg.Watcher.QueueSize)
	assert.False(t, cfg.Server.Enabled)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "DATABASE_DRIVER=sqlite\nDATABASE_NAME=flights.db\nWATCHER_QUEUE_SIZE=4\nSERVER_ENABLED=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	t.Cleanup(func() {
		for _, k := range []string{"DATABASE_DRIVER", "DATABASE_NAME", "WATCHER_QUEUE_SIZE", "SERVER_ENABLED"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "flights.db", cfg.Database.Name)
	assert.Equal(t, 4, cfg.Watcher.QueueSize)
	assert.True(t, cfg.Server.Enabled)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	dir := t.TempDir()
	env := "DATABASE_DRIVER=oracle\nWATCHER_QUEUE_SIZE=0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	t.Cleanup(func() {
		_ = os.Unsetenv("DATABASE_DRIVER")
		_ = os.Unsetenv("WATCHER_QUEUE_SIZE")
	})

	cfg, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), `unsupported driver "oracle"`)
	assert.Contains(t, err.Error(), "watcher.queue_size")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Database.Driver = "sqlite"
		cfg.Database.Name = "flights.db"
		cfg.Watcher.Dir = "/run/dump1090-mutability"
		cfg.Watcher.QueueSize = 16
		return cfg
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Missing Watch Directory", func(t *testing.T) {
		cfg := valid()
		cfg.Watcher.Dir = ""
		assert.ErrorContains(t, cfg.Validate(), "watcher.dir")
	})

	t.Run("Storage Without Bucket", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Enabled = true
		assert.ErrorContains(t, cfg.Validate(), "storage.bucket")
	})

	t.Run("Storage Disabled Without Bucket", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Bucket = ""
		assert.NoError(t, cfg.Validate())
	})
}
