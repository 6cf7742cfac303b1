package browser

import (
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/pages"
)

// Flow runs the signup and login steps in one browser context
type Flow struct {
	ctx    playwright.BrowserContext
	page   playwright.Page
	opts   Options
	expect playwright.PlaywrightAssertions
}

func newFlow(bctx playwright.BrowserContext, page playwright.Page, opts Options) *Flow {
	expect := playwright.NewPlaywrightAssertions()
	if opts.Timeout > 0 {
		expect = playwright.NewPlaywrightAssertions(opts.timeoutMs())
	}
	return &Flow{ctx: bctx, page: page, opts: opts, expect: expect}
}

// SignUp registers the user on the signup page
func (f *Flow) SignUp(creds models.Credentials) error {
	sp := pages.NewSignupPage(f.page, f.opts.SignupURL)
	if err := sp.Goto(); err != nil {
		return err
	}
	if err := sp.SignUp(creds.Name, creds.Email, creds.Password); err != nil {
		return err
	}
	// let the form post land before the login page replaces it
	if err := f.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateDomcontentloaded}); err != nil {
		return fmt.Errorf("signup did not complete: %w", err)
	}
	return nil
}

// LogIn signs in with the name as username
func (f *Flow) LogIn(creds models.Credentials) error {
	lp := pages.NewLoginPage(f.page, f.opts.LoginURL)
	if err := lp.Goto(); err != nil {
		return err
	}
	return lp.LogIn(creds.Name, creds.Password)
}

// ExpectAuthenticated waits for the page title to become the logged-in title
func (f *Flow) ExpectAuthenticated() error {
	if err := f.expect.Page(f.page).ToHaveTitle(f.opts.ExpectedTitle); err != nil {
		return fmt.Errorf("expected title %q: %w", f.opts.ExpectedTitle, err)
	}
	return nil
}

// StorageState captures cookies and localStorage of the context
func (f *Flow) StorageState() (*models.StorageState, error) {
	st, err := f.ctx.StorageState()
	if err != nil {
		return nil, fmt.Errorf("failed to read storage state: %w", err)
	}
	return convertState(st)
}

// Close closes the context and its pages
func (f *Flow) Close() error {
	return f.ctx.Close()
}

// convertState re-encodes playwright's state into the on-disk model, both share the JSON layout
func convertState(st *playwright.StorageState) (*models.StorageState, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage state: %w", err)
	}
	return models.ParseStorageState(data)
}
