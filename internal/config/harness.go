package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/automation-practice/sessionboot/internal/models"
)

// Bootstrap modes
const (
	BootstrapInProcess  = "inprocess"
	BootstrapSubprocess = "subprocess"
)

// HarnessConfig holds settings for bootstrapping and reusing the browser session
type HarnessConfig struct {
	StorageState   string        `env:"STORAGE_STATE" envDefault:"auth/storage_state.json"`
	SignupName     string        `env:"SIGNUP_NAME" envDefault:"QA User"`
	SignupEmail    string        `env:"SIGNUP_EMAIL"`
	SignupPassword string        `env:"SIGNUP_PASSWORD" envDefault:"StrongPass123"`
	SignupURL      string        `env:"SIGNUP_URL" envDefault:"http://localhost:8080/automation/signup.html"`
	LoginURL       string        `env:"LOGIN_URL" envDefault:"http://localhost:8080/automation/login.html"`
	ExpectedTitle  string        `env:"EXPECTED_TITLE" envDefault:"Playwright, Selenium & Cypress Practice | Interactive Automation Testing Playground"`
	Headless       bool          `env:"HEADLESS" envDefault:"true"`
	SlowMoMs       float64       `env:"SLOW_MO_MS" envDefault:"0"`
	BrowserTimeout time.Duration `env:"BROWSER_TIMEOUT" envDefault:"15s"`
	InstallBrowser bool          `env:"INSTALL_BROWSERS" envDefault:"false"`
	BootstrapMode  string        `env:"BOOTSTRAP_MODE" envDefault:"inprocess"`
	BootstrapCmd   []string      `env:"BOOTSTRAP_CMD" envSeparator:" " envDefault:"sessionboot"`
}

// LoadHarnessConfig parses harness settings from the given environment
func LoadHarnessConfig(environ map[string]string) (*HarnessConfig, error) {
	var cfg HarnessConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse harness config: %w", err)
	}

	cfg.BootstrapMode = strings.ToLower(strings.TrimSpace(cfg.BootstrapMode))
	switch cfg.BootstrapMode {
	case BootstrapInProcess, BootstrapSubprocess:
	default:
		return nil, fmt.Errorf("BOOTSTRAP_MODE must be %q or %q, got %q", BootstrapInProcess, BootstrapSubprocess, cfg.BootstrapMode)
	}
	if cfg.StorageState == "" {
		return nil, fmt.Errorf("STORAGE_STATE is required")
	}
	if cfg.BrowserTimeout <= 0 {
		return nil, fmt.Errorf("BROWSER_TIMEOUT must be positive")
	}
	if cfg.BootstrapMode == BootstrapSubprocess && len(cfg.BootstrapCmd) == 0 {
		return nil, fmt.Errorf("BOOTSTRAP_CMD is required in subprocess mode")
	}

	return &cfg, nil
}

// Credentials returns the signup identity configured for bootstraps.
// The email may be empty, callers generate one per bootstrap in that case.
func (c *HarnessConfig) Credentials() models.Credentials {
	return models.Credentials{
		Name:     c.SignupName,
		Email:    c.SignupEmail,
		Password: c.SignupPassword,
	}
}

// Environ returns the process environment as a map
func Environ() map[string]string {
	return env.ToMap(os.Environ())
}
