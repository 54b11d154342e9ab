package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-variable defaults for the CLI. Flags override.
type Config struct {
	DBPath   string `env:"PAIRSTATS_DB"`
	MinGames int    `env:"PAIRSTATS_MIN_GAMES" envDefault:"3"`
	Limit    int    `env:"PAIRSTATS_LIMIT" envDefault:"5"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
