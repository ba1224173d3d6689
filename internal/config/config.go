// Package config loads blobsmith settings from the environment.
//
// Every field has a BLOBSMITH_* variable. Command-line flags take precedence
// over these values; the CLI only consults Config for flags left unset.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Config holds the environment-derived settings.
type Config struct {
	// Cache selects the cache backend: "file" (default), "none", or a
	// redis:// or mongodb:// URL.
	Cache    string        `env:"BLOBSMITH_CACHE"     envDefault:"file"`
	CacheDir string        `env:"BLOBSMITH_CACHE_DIR"`
	CacheTTL time.Duration `env:"BLOBSMITH_CACHE_TTL" envDefault:"168h"`
	Addr     string        `env:"BLOBSMITH_ADDR"      envDefault:":8080"`
	LogLevel string        `env:"BLOBSMITH_LOG_LEVEL" envDefault:"info"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadFrom parses Config from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("BLOBSMITH_CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("BLOBSMITH_LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured log level. It falls back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
