package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MONGODB_URL", "DB_DATABASE", "DOCUMENT_DB_BUNDLE_PATH",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"FOLDER_PATH", "PORT", "WORKER_CONCURRENCY", "BCRYPT_COST",
	} {
		// t.Setenv registers restoration of the original value; the
		// unset afterwards makes Load see a clean environment.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
	assert.Equal(t, "files_manager", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "/tmp/files_manager", cfg.Storage.Root)
	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Worker.Concurrency)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://db.internal:27017")
	t.Setenv("DB_DATABASE", "drive")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FOLDER_PATH", "/var/lib/drive")
	t.Setenv("PORT", "8080")
	t.Setenv("WORKER_CONCURRENCY", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URL)
	assert.Equal(t, "drive", cfg.Mongo.Database)
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "/var/lib/drive", cfg.Storage.Root)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "many")

	_, err := Load()
	assert.Error(t, err)
}
