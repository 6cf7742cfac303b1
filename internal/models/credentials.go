package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials identify the throwaway user created during a session bootstrap.
// Name doubles as the username on the login form.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Credential errors
var (
	ErrMissingName     = errors.New("name is required")
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
)

// Validate checks that all credential fields are set
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrMissingEmail
	}
	if c.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// WithGeneratedEmail returns a copy with a unique email filled in when none is set
func (c Credentials) WithGeneratedEmail() Credentials {
	if c.Email == "" {
		c.Email = GenerateEmail()
	}
	return c
}

// GenerateEmail returns a unique address so repeated signups don't clash
func GenerateEmail() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("test_%s@example.com", id[:10])
}

// EpochCredentials builds a credential set keyed by the unix time of t
func EpochCredentials(t time.Time) Credentials {
	epoch := t.Unix()
	return Credentials{
		Name:     fmt.Sprintf("TestUser%d", epoch),
		Email:    fmt.Sprintf("playwright_user_%d@example.com", epoch),
		Password: fmt.Sprintf("P@ssw0rd%d!", epoch),
	}
}
