// Package browser starts Playwright and drives the signup and login flow.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/playwright-community/playwright-go"

	"github.com/automation-practice/sessionboot/internal/config"
	"github.com/automation-practice/sessionboot/internal/services"
)

// Options control how the browser is launched
type Options struct {
	Headless       bool
	SlowMo         float64 // milliseconds between operations
	Timeout        time.Duration
	InstallBrowser bool
	SignupURL      string
	LoginURL       string
	ExpectedTitle  string
}

// OptionsFromConfig maps harness config to launch options
func OptionsFromConfig(cfg *config.HarnessConfig) Options {
	return Options{
		Headless:       cfg.Headless,
		SlowMo:         cfg.SlowMoMs,
		Timeout:        cfg.BrowserTimeout,
		InstallBrowser: cfg.InstallBrowser,
		SignupURL:      cfg.SignupURL,
		LoginURL:       cfg.LoginURL,
		ExpectedTitle:  cfg.ExpectedTitle,
	}
}

// launchOptions returns the chromium launch options for o
func (o Options) launchOptions() playwright.BrowserTypeLaunchOptions {
	lo := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(o.Headless)}
	if o.SlowMo > 0 {
		lo.SlowMo = playwright.Float(o.SlowMo)
	}
	return lo
}

// timeoutMs returns the default action timeout in milliseconds
func (o Options) timeoutMs() float64 {
	return float64(o.Timeout / time.Millisecond)
}

// Session owns a Playwright driver and a single Chromium instance
type Session struct {
	opts    Options
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch starts Playwright and a Chromium browser
func Launch(opts Options) (*Session, error) {
	if opts.InstallBrowser {
		log.Printf("[INFO] installing playwright chromium")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(opts.launchOptions())
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Printf("[DEBUG] launched chromium %s, headless=%v", b.Version(), opts.Headless)
	return &Session{opts: opts, pw: pw, browser: b}, nil
}

// Browser returns the underlying browser
func (s *Session) Browser() playwright.Browser {
	return s.browser
}

// NewContext creates a browser context, restored from storagePath when it is not empty
func (s *Session) NewContext(storagePath string) (playwright.BrowserContext, error) {
	var opts playwright.BrowserNewContextOptions
	if storagePath != "" {
		opts.StorageStatePath = playwright.String(storagePath)
	}
	bctx, err := s.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	if s.opts.Timeout > 0 {
		bctx.SetDefaultTimeout(s.opts.timeoutMs())
	}
	return bctx, nil
}

// OpenFlow opens a fresh, unauthenticated context for a bootstrap
func (s *Session) OpenFlow(_ context.Context) (services.AuthFlow, error) {
	bctx, err := s.NewContext("")
	if err != nil {
		return nil, err
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return newFlow(bctx, page, s.opts), nil
}

// Close shuts down the browser and the Playwright driver
func (s *Session) Close() error {
	var errs []error
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}
