// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Backend        string
	DBPath         string
	DataDir        string
	Addr           string
	AdminUser      string
	LogPath        string
	MetricsEnabled bool
}

// Load reads .env (if present) and then the ZALOGA_* environment variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Backend:        strings.ToLower(strings.TrimSpace(getenv("ZALOGA_BACKEND", BackendSQLite))),
		DBPath:         getenv("ZALOGA_DB", "zaloga.sqlite3"),
		DataDir:        getenv("ZALOGA_DATA_DIR", "zaloga-data"),
		Addr:           getenv("ZALOGA_ADDR", ":8080"),
		AdminUser:      getenv("ZALOGA_USER", "Admin"),
		LogPath:        getenv("ZALOGA_LOG", ""),
		MetricsEnabled: getenvBool("ZALOGA_METRICS", true),
	}
}

// Validate checks values that flags and the environment cannot constrain.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("sqlite backend needs a database path")
		}
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("file backend needs a data directory")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, file or memory)", c.Backend)
	}
	if strings.TrimSpace(c.AdminUser) == "" {
		return fmt.Errorf("admin username must not be empty")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
