package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// LoginTitle is the document title of the login page
const LoginTitle = "Login - Automation Practice"

// LoginPage wraps the login form, fields are located by their placeholders
type LoginPage struct {
	page        playwright.Page
	url         string
	Username    playwright.Locator
	Password    playwright.Locator
	LoginButton playwright.Locator
	Error       playwright.Locator
}

// NewLoginPage binds the login locators to page
func NewLoginPage(page playwright.Page, url string) *LoginPage {
	return &LoginPage{
		page:        page,
		url:         url,
		Username:    page.GetByPlaceholder("Enter your username"),
		Password:    page.GetByPlaceholder("Enter your password"),
		LoginButton: page.GetByRole("button", playwright.PageGetByRoleOptions{Name: "Login"}),
		Error:       page.Locator(".error-message"),
	}
}

// Goto opens the login page
func (p *LoginPage) Goto() error {
	if _, err := p.page.Goto(p.url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	return nil
}

// LogIn fills the form and submits it
func (p *LoginPage) LogIn(username, password string) error {
	if err := p.Username.Fill(username); err != nil {
		return fmt.Errorf("failed to fill username: %w", err)
	}
	if err := p.Password.Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	if err := p.LoginButton.Click(); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}
	return nil
}
