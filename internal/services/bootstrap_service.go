package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/statefile"
)

// AuthFlow drives one browser context through signup and login
type AuthFlow interface {
	SignUp(creds models.Credentials) error
	LogIn(creds models.Credentials) error
	ExpectAuthenticated() error
	StorageState() (*models.StorageState, error)
	Close() error
}

// FlowOpener opens a fresh, unauthenticated AuthFlow
type FlowOpener interface {
	OpenFlow(ctx context.Context) (AuthFlow, error)
}

// Bootstrapper produces a session state file for the given credentials
type Bootstrapper interface {
	Bootstrap(ctx context.Context, creds models.Credentials, storagePath string) error
}

// ErrEmptySession is returned when login succeeded but the browser holds no cookies or origins
var ErrEmptySession = errors.New("authenticated browser state has no cookies or origins")

// BootstrapService runs the signup and login flow in-process and saves the resulting state
type BootstrapService struct {
	opener FlowOpener
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(opener FlowOpener) *BootstrapService {
	return &BootstrapService{opener: opener}
}

// Bootstrap signs up, logs in, verifies the landing page and saves the storage state to storagePath
func (s *BootstrapService) Bootstrap(ctx context.Context, creds models.Credentials, storagePath string) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	if storagePath == "" {
		return fmt.Errorf("storage path is required")
	}

	log.Printf("[INFO] bootstrap starting for %s", creds.Email)

	flow, err := s.opener.OpenFlow(ctx)
	if err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	defer func() {
		if cerr := flow.Close(); cerr != nil {
			log.Printf("[WARN] failed to close browser flow: %v", cerr)
		}
	}()

	if err := flow.SignUp(creds); err != nil {
		return fmt.Errorf("failed to sign up: %w", err)
	}

	log.Printf("[INFO] bootstrap logging in as %q", creds.Name)
	if err := flow.LogIn(creds); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	if err := flow.ExpectAuthenticated(); err != nil {
		return fmt.Errorf("login did not reach the authenticated page: %w", err)
	}

	state, err := flow.StorageState()
	if err != nil {
		return fmt.Errorf("failed to capture storage state: %w", err)
	}
	if !state.Usable() {
		return ErrEmptySession
	}

	if err := statefile.Save(storagePath, state); err != nil {
		return fmt.Errorf("failed to save storage state: %w", err)
	}

	log.Printf("[INFO] bootstrap saved storage state to %s", storagePath)
	return nil
}
