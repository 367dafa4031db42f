// Package config loads rdump's environment-derived defaults, the way the
// CLI falls back when a flag isn't given explicitly (spec.md §6, ambient
// stack). Adapted from morfx's own LoadConfig: a flat struct of
// os.Getenv lookups with hard-coded fallbacks, with a godotenv.Load()
// pass first so a project-local .env file can seed those variables
// without the user exporting them in their shell.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds rdump's environment-derived defaults.
type Config struct {
	CacheDSN     string
	CacheDebug   bool
	Workers      int // 0 means runtime.NumCPU() at the orchestrator
	// MaxDepth follows walker.Options.MaxDepth's convention: negative
	// means unbounded (the default here), 0 restricts to the root
	// directory's own files, N>0 additionally allows N levels of
	// subdirectories.
	MaxDepth     int
	GlobalIgnore string
}

// Load reads a .env file in the current directory if present (silently
// ignored if absent, matching godotenv's own convention), then builds a
// Config from environment variables, falling back to rdump's defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		CacheDSN:     os.Getenv("RDUMP_CACHE_DSN"),
		GlobalIgnore: os.Getenv("RDUMP_GLOBAL_IGNORE"),
		MaxDepth:     -1,
	}

	if v := os.Getenv("RDUMP_CACHE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CacheDebug = b
		}
	}
	if v := os.Getenv("RDUMP_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("RDUMP_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxDepth = n
		}
	}

	return cfg
}
