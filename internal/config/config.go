// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/logger"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the raffle server.
type Config struct {
	Addr            string        `env:"WORDRAFFLE_ADDR"             envDefault:":8080"`
	GinMode         string        `env:"WORDRAFFLE_GIN_MODE"         envDefault:"release"`
	Verbose         bool          `env:"WORDRAFFLE_VERBOSE"          envDefault:"false"`
	SessionTTL      time.Duration `env:"WORDRAFFLE_SESSION_TTL"      envDefault:"1h"`
	CleanupInterval time.Duration `env:"WORDRAFFLE_CLEANUP_INTERVAL" envDefault:"10m"`
	ShutdownTimeout time.Duration `env:"WORDRAFFLE_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Seed fixes the random sequence; 0 seeds from crypto/rand.
	Seed           int64    `env:"WORDRAFFLE_SEED"            envDefault:"0"`
	AllowedOrigins []string `env:"WORDRAFFLE_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads an optional .env file and then parses the environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil {
		logger.Info("No .env file found, reading environment variables")
	}
	return Parse()
}

// Parse reads the configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("WORDRAFFLE_ADDR must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("WORDRAFFLE_SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.CleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("WORDRAFFLE_CLEANUP_INTERVAL must be positive, got %s", c.CleanupInterval))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("WORDRAFFLE_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	return errors.Join(errs...)
}
