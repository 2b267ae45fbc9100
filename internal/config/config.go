package config

import (
	"os"
	"strconv"
	"time"
)

// Mongo contains configuration for the MongoDB connection.
type Mongo struct {
	URL                  string // MongoDB connection URI
	Database             string // Database name
	DocumentDBBundlePath string // Path to a CA bundle for AWS DocumentDB; empty disables TLS
}

// Redis contains configuration for the Redis connection backing sessions
// and the job queue.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Storage contains configuration for durable content storage.
type Storage struct {
	Root string // Directory under which content files and thumbnails live
}

// HTTP contains configuration for the HTTP server.
type HTTP struct {
	Port string // Port for the server to listen on
}

// Worker contains configuration for the thumbnail worker.
type Worker struct {
	Concurrency int // Number of concurrent job handlers
}

// Config is the top-level struct holding all application configuration.
type Config struct {
	Mongo      Mongo
	Redis      Redis
	Storage    Storage
	HTTP       HTTP
	Worker     Worker
	BcryptCost int
	SessionTTL time.Duration
}

// Load reads configuration from environment variables and returns a
// populated Config struct, falling back to defaults suitable for local
// development.
func Load() (*Config, error) {
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := getenvInt("BCRYPT_COST", 0)
	if err != nil {
		return nil, err
	}
	concurrency, err := getenvInt("WORKER_CONCURRENCY", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mongo: Mongo{
			URL:                  getenvStr("MONGODB_URL", "mongodb://localhost:27017"),
			Database:             getenvStr("DB_DATABASE", "files_manager"),
			DocumentDBBundlePath: getenvStr("DOCUMENT_DB_BUNDLE_PATH", ""),
		},
		Redis: Redis{
			Addr:     getenvStr("REDIS_ADDR", "localhost:6379"),
			Password: getenvStr("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Storage: Storage{
			Root: getenvStr("FOLDER_PATH", "/tmp/files_manager"),
		},
		HTTP: HTTP{
			Port: getenvStr("PORT", "5000"),
		},
		Worker: Worker{
			Concurrency: concurrency,
		},
		BcryptCost: bcryptCost,
		SessionTTL: 24 * time.Hour,
	}
	return cfg, nil
}

// -------Helper Functions----------

// getenvStr retrieves a string environment variable or returns a default.
func getenvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getenvInt retrieves an integer environment variable or returns a default value.
func getenvInt(key string, fallback int) (int, error) {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i, nil
		} else {
			return 0, err
		}
	}
	return fallback, nil
}
