package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

// Config holds all configuration for the combat simulator
type Config struct {
	// Character storage. Redis wins over SQLite; neither means in-memory.
	RedisURL   string `env:"REDIS_URL"`
	SQLitePath string `env:"SQLITE_PATH"`

	// MonsterFile is a YAML file of monster templates checked before the SRD
	MonsterFile string `env:"MONSTER_FILE"`

	DND5E DND5EConfig `envPrefix:"DND5E_"`

	// AutoSync writes hit point changes back to the character store
	AutoSync        bool `env:"AUTO_SYNC" envDefault:"true"`
	SyncConcurrency int  `env:"SYNC_CONCURRENCY" envDefault:"4"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	APIEnabled  bool          `env:"API_ENABLED" envDefault:"false"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects combinations the simulator can't run with
func (c *Config) Validate() error {
	if c.RedisURL != "" && c.SQLitePath != "" {
		return dnderr.InvalidArgument("REDIS_URL and SQLITE_PATH are mutually exclusive")
	}
	if c.SyncConcurrency < 1 {
		return dnderr.InvalidArgumentf("SYNC_CONCURRENCY must be at least 1, got %d", c.SyncConcurrency).
			WithMeta("sync_concurrency", c.SyncConcurrency)
	}
	if c.DND5E.APIEnabled && c.DND5E.HTTPTimeout <= 0 {
		return dnderr.InvalidArgument("DND5E_HTTP_TIMEOUT must be positive")
	}
	return nil
}

// StoreKind names the character store the config selects
func (c *Config) StoreKind() string {
	switch {
	case c.RedisURL != "":
		return "redis"
	case c.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}
