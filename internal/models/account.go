package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a user registered on the practice site
type Account struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// WebSession is a logged-in browser session on the practice site
type WebSession struct {
	Token     string    `db:"token"`
	AccountID string    `db:"account_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Domain errors
var (
	ErrInvalidUsername  = errors.New("username must be 3-64 characters")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// SignupRequest is the data submitted by the signup form
type SignupRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Normalized returns the request with the username trimmed and the email trimmed and lowercased,
// the form in which accounts are stored and compared
func (r SignupRequest) Normalized() SignupRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

// Validate checks the signup form fields
func (r SignupRequest) Validate() error {
	name := strings.TrimSpace(r.Username)
	if len(name) < 3 || len(name) > 64 {
		return ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, r.Email)
	}
	if len(r.Password) < 6 {
		return ErrPasswordTooShort
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// NewAccount creates an account from a validated signup request and a password hash
func NewAccount(req SignupRequest, passwordHash string) (*Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()
	return &Account{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewWebSession starts a session for the account that lasts ttl
func NewWebSession(accountID string, ttl time.Duration) *WebSession {
	now := time.Now().UTC()
	return &WebSession{
		Token:     uuid.New().String(),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired returns true if the session is no longer valid at the given time
func (s *WebSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
