package cli

import (
	"github.com/mcoot/yahtzee-go/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"YAHTZEE_SERVER" envDefault:"http://localhost:8080"`
	Output    string `env:"YAHTZEE_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"YAHTZEE_VERBOSE"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	cfg := &Config{ServerURL: "http://localhost:8080", Output: "text"}
	// Flags still override a malformed environment, so parse errors are ignored
	_ = config.ParseEnv(cfg)
	return cfg
}
