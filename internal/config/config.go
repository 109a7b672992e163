// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the planhub API server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty means in-memory storage.
//   - AuthSecret: HMAC secret for signing access tokens (HS256).
//   - TokenTTL / TokenIssuer: access token lifetime and issuer claim.
//   - MigrateOnStart: apply pending schema migrations before serving.
type Config struct {
	Addr           string        `env:"PLANHUB_ADDR" envDefault:":8080"`
	DatabaseDSN    string        `env:"PLANHUB_PG_DSN"`
	AuthSecret     string        `env:"PLANHUB_AUTH_SECRET"`
	TokenTTL       time.Duration `env:"PLANHUB_TOKEN_TTL" envDefault:"30m"`
	TokenIssuer    string        `env:"PLANHUB_TOKEN_ISSUER" envDefault:"planhub"`
	RateBurst      int           `env:"PLANHUB_RATE_BURST" envDefault:"20"`
	RatePerSec     int           `env:"PLANHUB_RATE_PER_SEC" envDefault:"10"`
	MaxBodyBytes   int64         `env:"PLANHUB_MAX_BODY_BYTES" envDefault:"1048576"`
	MigrateOnStart bool          `env:"PLANHUB_MIGRATE_ON_START" envDefault:"false"`
}

// Load parses configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.AuthSecret) == "" {
		return errors.New("config: PLANHUB_AUTH_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: token TTL must be positive")
	}
	if c.RateBurst <= 0 || c.RatePerSec <= 0 {
		return errors.New("config: rate limits must be positive")
	}
	return nil
}
