// Package fixtures shares one authenticated browser context across a test run.
//
// A Harness is set up once per package (typically in TestMain), makes sure the
// saved session state is usable and hands every test a fresh page from a
// context restored from that state.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"testing"

	log "github.com/go-pkgz/lgr"
	"github.com/playwright-community/playwright-go"

	"github.com/automation-practice/sessionboot/internal/browser"
	"github.com/automation-practice/sessionboot/internal/config"
	"github.com/automation-practice/sessionboot/internal/services"
)

// Ensurer makes sure the session state file is usable
type Ensurer interface {
	Ensure(ctx context.Context, force bool) (services.EnsureResult, error)
}

// Harness owns the browser and the authenticated context for a test run
type Harness struct {
	session     *browser.Session
	bctx        playwright.BrowserContext
	storagePath string
}

// Setup launches the browser, ensures the session state and restores it into a context.
// A nil ensurer bootstraps according to cfg.BootstrapMode, reusing the harness browser in-process.
func Setup(ctx context.Context, cfg *config.HarnessConfig, ensurer Ensurer) (*Harness, error) {
	session, err := browser.Launch(browser.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	h := &Harness{session: session, storagePath: cfg.StorageState}

	if ensurer == nil {
		ensurer = DefaultEnsurer(cfg, session)
	}
	res, err := ensurer.Ensure(ctx, false)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ensure session state: %w", err), session.Close())
	}
	if !res.Reused {
		log.Printf("[INFO] bootstrapped session state %s for %s", res.Path, res.Email)
	}

	h.bctx, err = session.NewContext(cfg.StorageState)
	if err != nil {
		return nil, errors.Join(err, session.Close())
	}
	return h, nil
}

// DefaultEnsurer builds the session service for cfg.BootstrapMode
func DefaultEnsurer(cfg *config.HarnessConfig, opener services.FlowOpener) *services.SessionService {
	var b services.Bootstrapper = services.NewBootstrapService(opener)
	if cfg.BootstrapMode == config.BootstrapSubprocess {
		b = services.NewCommandBootstrapper(cfg.BootstrapCmd)
	}
	return services.NewSessionService(b, cfg.StorageState, cfg.Credentials())
}

// NewPage opens a fresh page in the authenticated context, closed when the test ends
func (h *Harness) NewPage(t testing.TB) playwright.Page {
	t.Helper()
	page, err := h.bctx.NewPage()
	if err != nil {
		t.Fatalf("failed to open page: %v", err)
	}
	t.Cleanup(func() {
		if err := page.Close(); err != nil {
			t.Logf("failed to close page: %v", err)
		}
	})
	return page
}

// Context returns the authenticated browser context
func (h *Harness) Context() playwright.BrowserContext {
	return h.bctx
}

// Browser returns the shared browser
func (h *Harness) Browser() playwright.Browser {
	return h.session.Browser()
}

// Session returns the browser session, for opening extra contexts
func (h *Harness) Session() *browser.Session {
	return h.session
}

// StoragePath returns the state file the context was restored from
func (h *Harness) StoragePath() string {
	return h.storagePath
}

// Close closes the context, then the browser and the driver
func (h *Harness) Close() error {
	var errs []error
	if h.bctx != nil {
		if err := h.bctx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}
	errs = append(errs, h.session.Close())
	return errors.Join(errs...)
}
