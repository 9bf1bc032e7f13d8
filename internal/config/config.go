// Package config loads configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBatchSize     = 512
	DefaultListingCache  = 64
	DefaultFlushInterval = 50 * time.Millisecond
)

// Config holds all runtime configuration.
type Config struct {
	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Archive walkers
	WimlibCommand string

	// Ingestion
	BatchSize     int
	FlushInterval time.Duration
	ListingCache  int

	// Presentation
	ShowHidden bool

	// Warnings collects invalid values that were replaced by defaults.
	Warnings []error
}

// LoadDotEnv reads a .env file from the working directory (or the given
// paths) into the process environment. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	cfg := &Config{}
	cfg.LogLevel = envOr("RWIM_LOG_LEVEL", "info")
	cfg.LogFormat = envOr("RWIM_LOG_FORMAT", "json")
	cfg.LogFile = envOr("RWIM_LOG_FILE", "")
	cfg.WimlibCommand = envOr("RWIM_WIMLIB", "wimlib-imagex")
	cfg.BatchSize = cfg.envInt("RWIM_BATCH_SIZE", DefaultBatchSize)
	cfg.FlushInterval = cfg.envDuration("RWIM_FLUSH_INTERVAL", DefaultFlushInterval)
	cfg.ListingCache = cfg.envInt("RWIM_LISTING_CACHE", DefaultListingCache)
	cfg.ShowHidden = cfg.envBool("RWIM_SHOW_HIDDEN", true)

	switch cfg.LogFormat {
	case "json", "console":
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Errorf("RWIM_LOG_FORMAT: unknown format %q, using json", cfg.LogFormat))
		cfg.LogFormat = "json"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

// envInt only accepts positive values.
func (c *Config) envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	if i <= 0 {
		c.Warnings = append(c.Warnings, fmt.Errorf("%s: must be positive, got %d", key, i))
		return fallback
	}
	return i
}

func (c *Config) envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		c.Warnings = append(c.Warnings, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}
