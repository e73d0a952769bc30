// Package config loads runtime settings for the MCP server from the
// environment, optionally seeded by a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel        = "PIXELSUM_MCP_LOG_LEVEL"
	EnvMaxIndexes      = "PIXELSUM_MCP_MAX_INDEXES"
	EnvMaxRequestBytes = "PIXELSUM_MCP_MAX_REQUEST_BYTES"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultMaxIndexes = 16
	// A 4095x4095 RGBA buffer is ~67MB raw and ~90MB once base64 encoded.
	DefaultMaxRequestBytes = 128 * 1024 * 1024
)

// Config holds the server settings.
type Config struct {
	// Debug enables verbose request tracing on stderr.
	Debug bool

	// MaxIndexes caps the number of indexes the server keeps at once.
	MaxIndexes int

	// MaxRequestBytes is the longest JSON-RPC line the server accepts.
	MaxRequestBytes int
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv for lookups.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Debug:           strings.EqualFold(strings.TrimSpace(getenv(EnvLogLevel)), "debug"),
		MaxIndexes:      DefaultMaxIndexes,
		MaxRequestBytes: DefaultMaxRequestBytes,
	}

	var err error
	if cfg.MaxIndexes, err = positiveInt(getenv, EnvMaxIndexes, DefaultMaxIndexes); err != nil {
		return nil, err
	}
	if cfg.MaxRequestBytes, err = positiveInt(getenv, EnvMaxRequestBytes, DefaultMaxRequestBytes); err != nil {
		return nil, err
	}

	return cfg, nil
}

func positiveInt(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", key, n)
	}
	return n, nil
}
