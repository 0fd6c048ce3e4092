// Package config reads runtime settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by all commands.
type Config struct {
	// DBPath overrides the default database location when non-empty.
	DBPath string

	// CheckUpdates enables the release check in `logiq version --check`.
	CheckUpdates bool
}

// Load reads configuration from a .env file (if present) and
// environment variables, applying defaults when values are missing.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		DBPath:       os.Getenv("LOGIQ_DB"),
		CheckUpdates: envBoolOr("LOGIQ_CHECK_UPDATES", true),
	}
}

func envBoolOr(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
