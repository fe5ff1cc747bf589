package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Server holds the settings read by cmd/server.
type Server struct {
	Host           string        `env:"YAHTZEE_HOST" envDefault:""`
	Port           int           `env:"YAHTZEE_PORT" envDefault:"8080"`
	ReadTimeout    time.Duration `env:"YAHTZEE_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"YAHTZEE_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout    time.Duration `env:"YAHTZEE_IDLE_TIMEOUT" envDefault:"60s"`
	StorageType    string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL       string        `env:"REDIS_URL"`
	TableTTL       time.Duration `env:"YAHTZEE_TABLE_TTL" envDefault:"6h"`
	RollLimit      int           `env:"ROLL_LIMIT" envDefault:"3"`
	LogLevel       string        `env:"YAHTZEE_LOG_LEVEL" envDefault:"info"`
	MetricsEnabled bool          `env:"YAHTZEE_METRICS" envDefault:"true"`
}

// LoadServer parses and validates the server configuration
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks for combinations the server cannot start with
func (c Server) Validate() error {
	switch c.StorageType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be 'memory' or 'redis'", c.StorageType)
	}
	if c.RollLimit < 1 {
		return fmt.Errorf("invalid ROLL_LIMIT %d: must be at least 1", c.RollLimit)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid YAHTZEE_PORT %d", c.Port)
	}
	return nil
}

// Addr returns the listen address
func (c Server) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
