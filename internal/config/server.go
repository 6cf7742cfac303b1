package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds settings for the practice site
type ServerConfig struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	HomeTitle      string        `env:"EXPECTED_TITLE" envDefault:"Playwright, Selenium & Cypress Practice | Interactive Automation Testing Playground"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RequestsPerSec float64       `env:"REQUESTS_PER_SEC" envDefault:"50"`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
}

// LoadServerConfig loads server configuration from the given environment
func LoadServerConfig(environ map[string]string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("failed to parse server config: %w", err)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("SESSION_TTL must be positive")
	}
	return cfg, nil
}
