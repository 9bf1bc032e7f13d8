package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RWIM_LOG_LEVEL", "RWIM_LOG_FORMAT", "RWIM_LOG_FILE", "RWIM_WIMLIB",
		"RWIM_BATCH_SIZE", "RWIM_FLUSH_INTERVAL", "RWIM_LISTING_CACHE", "RWIM_SHOW_HIDDEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" || cfg.LogFile != "" {
		t.Fatalf("unexpected logging defaults: %+v", cfg)
	}
	if cfg.WimlibCommand != "wimlib-imagex" {
		t.Fatalf("wimlib command = %q", cfg.WimlibCommand)
	}
	if cfg.BatchSize != DefaultBatchSize || cfg.ListingCache != DefaultListingCache {
		t.Fatalf("batch=%d cache=%d", cfg.BatchSize, cfg.ListingCache)
	}
	if cfg.FlushInterval != DefaultFlushInterval || !cfg.ShowHidden {
		t.Fatalf("flush=%v hidden=%v", cfg.FlushInterval, cfg.ShowHidden)
	}
	if len(cfg.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", cfg.Warnings)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RWIM_BATCH_SIZE", "128")
	t.Setenv("RWIM_FLUSH_INTERVAL", "10ms")
	t.Setenv("RWIM_SHOW_HIDDEN", "false")
	t.Setenv("RWIM_LOG_FORMAT", "console")
	t.Setenv("RWIM_WIMLIB", "/opt/wimlib/bin/wimlib-imagex")

	cfg := Load()
	if cfg.BatchSize != 128 || cfg.FlushInterval != 10*time.Millisecond || cfg.ShowHidden {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.LogFormat != "console" || cfg.WimlibCommand != "/opt/wimlib/bin/wimlib-imagex" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestInvalidValuesFallBackWithWarnings(t *testing.T) {
	clearEnv(t)
	t.Setenv("RWIM_BATCH_SIZE", "lots")
	t.Setenv("RWIM_LISTING_CACHE", "-4")
	t.Setenv("RWIM_SHOW_HIDDEN", "maybe")
	t.Setenv("RWIM_LOG_FORMAT", "xml")

	cfg := Load()
	if cfg.BatchSize != DefaultBatchSize || cfg.ListingCache != DefaultListingCache || !cfg.ShowHidden {
		t.Fatalf("invalid values should fall back: %+v", cfg)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("log format = %q", cfg.LogFormat)
	}
	if len(cfg.Warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %v", cfg.Warnings)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	path := filepath.Join(dir, "rwim.env")
	if err := os.WriteFile(path, []byte("RWIM_BATCH_SIZE=64\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("RWIM_BATCH_SIZE")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := Load().BatchSize; got != 64 {
		t.Fatalf("batch size from .env = %d", got)
	}
}
