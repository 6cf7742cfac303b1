// Package pages holds page objects for the practice site's signup and login forms.
package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// SignupTitle is the document title of the signup page
const SignupTitle = "Sign Up - Automation Practice"

// SignupPage wraps the signup form
type SignupPage struct {
	page            playwright.Page
	url             string
	expect          playwright.PlaywrightAssertions
	Username        playwright.Locator
	Email           playwright.Locator
	Password        playwright.Locator
	ConfirmPassword playwright.Locator
	SubmitButton    playwright.Locator
}

// NewSignupPage binds the signup locators to page
func NewSignupPage(page playwright.Page, url string) *SignupPage {
	return &SignupPage{
		page:            page,
		url:             url,
		expect:          playwright.NewPlaywrightAssertions(),
		Username:        page.Locator("#username"),
		Email:           page.Locator("#email"),
		Password:        page.Locator("#password"),
		ConfirmPassword: page.Locator("#confirmPassword"),
		SubmitButton:    page.GetByRole("button", playwright.PageGetByRoleOptions{Name: "Sign Up"}),
	}
}

// Goto opens the signup page and checks its title
func (p *SignupPage) Goto() error {
	if _, err := p.page.Goto(p.url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return fmt.Errorf("failed to open signup page: %w", err)
	}
	if err := p.expect.Page(p.page).ToHaveTitle(SignupTitle); err != nil {
		return fmt.Errorf("unexpected signup page title: %w", err)
	}
	return nil
}

// Form returns the signup form element
func (p *SignupPage) Form() playwright.Locator {
	return p.page.Locator("form")
}

// SignUp fills and submits the form, the password is typed into both password fields
func (p *SignupPage) SignUp(username, email, password string) error {
	fields := []struct {
		name    string
		locator playwright.Locator
		value   string
	}{
		{"username", p.Username, username},
		{"email", p.Email, email},
		{"password", p.Password, password},
		{"confirm password", p.ConfirmPassword, password},
	}
	for _, f := range fields {
		if err := f.locator.Fill(f.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.name, err)
		}
	}
	if err := p.SubmitButton.Click(); err != nil {
		return fmt.Errorf("failed to submit signup: %w", err)
	}
	return nil
}
