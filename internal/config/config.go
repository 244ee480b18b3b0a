// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server and slugctl.
// Values are populated by Load from environment variables; an empty variable
// counts as unset and takes the default.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins,
	// comma-separated in the environment.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// RedisURL enables slug reservations when set. Optional.
	RedisURL string `env:"REDIS_URL"`

	// SlugReservationTTL is how long a generated slug stays reserved while
	// its write is in flight.
	SlugReservationTTL time.Duration `env:"SLUG_RESERVATION_TTL" envDefault:"30s"`

	// MaxBodyBytes caps request bodies. Zero disables the limit.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	if cfg.SlugReservationTTL <= 0 {
		return Config{}, fmt.Errorf("config: SLUG_RESERVATION_TTL must be positive, got %s", cfg.SlugReservationTTL)
	}
	if cfg.MaxBodyBytes < 0 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must not be negative, got %d", cfg.MaxBodyBytes)
	}

	return cfg, nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// trimAll trims each entry, dropping empty ones.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
