// Package config loads scraper defaults from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultBaseURL   = "https://www.hockey-reference.com"
	DefaultUserAgent = "hockeyref-scraper/1.0 (github.com/pfrederiksen/hockeyref-scraper)"
)

// Config holds values every command needs. Command-line flags override them.
type Config struct {
	BaseURL   string        `env:"HOCKEYREF_BASE_URL" envDefault:"https://www.hockey-reference.com"`
	UserAgent string        `env:"HOCKEYREF_USER_AGENT" envDefault:"hockeyref-scraper/1.0 (github.com/pfrederiksen/hockeyref-scraper)"`
	Timeout   time.Duration `env:"HOCKEYREF_TIMEOUT" envDefault:"30s"`
	DataDir   string        `env:"HOCKEYREF_DATA_DIR" envDefault:"."`
	LogLevel  string        `env:"HOCKEYREF_LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"HOCKEYREF_LOG_FORMAT" envDefault:"text"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("HOCKEYREF_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	return &cfg, nil
}
