// Package config loads application configuration from environment
// variables. Every value has a working default so the tool runs out of
// the box; a .env file loaded by the entry point can override them.
package config

import (
	"os"
	"strconv"
)

// Default values for the tunable settings.
const (
	DefaultDataDir        = "data"
	DefaultHashIterations = 10000
	DefaultSeatsPerRow    = 10
	DefaultSessionTTLMin  = 120
)

// Config holds all runtime configuration values.
type Config struct {
	DataDir        string // directory holding the CSV collections
	HashIterations int    // PBKDF2 iteration count for password hashing
	SeatsPerRow    int    // seat-grid row width for layout derivation
	SessionSecret  string // HS256 secret for session tokens (empty: per-process random)
	SessionTTLMin  int    // session token time-to-live in minutes
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
func Load() Config {
	return Config{
		DataDir:        getenv("PVC_DATA_DIR", DefaultDataDir),
		HashIterations: atoi(getenv("PVC_HASH_ITERATIONS", ""), DefaultHashIterations),
		SeatsPerRow:    atoi(getenv("PVC_SEATS_PER_ROW", ""), DefaultSeatsPerRow),
		SessionSecret:  os.Getenv("PVC_SESSION_SECRET"),
		SessionTTLMin:  atoi(getenv("PVC_SESSION_TTL_MIN", ""), DefaultSessionTTLMin),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
