package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/crypto/bcrypt"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/repository"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	AccountExists(ctx context.Context, username, email string) (bool, error)
}

// SessionRepository defines the interface for login session persistence
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.WebSession) error
	GetSession(ctx context.Context, token string) (*models.WebSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AccountService handles signup, login and session lookup for the practice site
type AccountService interface {
	SignUp(ctx context.Context, req models.SignupRequest) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
	StartSession(ctx context.Context, accountID string) (*models.WebSession, error)
	ResolveSession(ctx context.Context, token string) (*models.Account, error)
	EndSession(ctx context.Context, token string) error
}

// Account service errors
var (
	ErrAccountExists      = errors.New("username or email is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("no session")
)

// dummyHash keeps Authenticate's timing the same for unknown users (bcrypt, cost 10)
const dummyHash = "$2a$10$C615A0mfUEFBupj9qcqhiuBEyf60EqrsakB90CozUoSON8d2Dc1uS"

// AccountServiceImpl implements AccountService
type AccountServiceImpl struct {
	accounts   AccountRepository
	sessions   SessionRepository
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(accounts AccountRepository, sessions SessionRepository, sessionTTL time.Duration) *AccountServiceImpl {
	return &AccountServiceImpl{
		accounts:   accounts,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// SignUp validates the form, rejects duplicates and stores the new account
func (s *AccountServiceImpl) SignUp(ctx context.Context, req models.SignupRequest) (*models.Account, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signup: %w", err)
	}

	exists, err := s.accounts.AccountExists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if exists {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := models.NewAccount(req, string(hash))
	if err != nil {
		return nil, fmt.Errorf("invalid signup: %w", err)
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// Authenticate checks the username and password.
// Unknown users are compared against a dummy hash so both paths take similar time.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	hashToCheck := dummyHash
	if account != nil {
		hashToCheck = account.PasswordHash
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(password)); err != nil || account == nil {
		log.Printf("[WARN] failed login for %q", username)
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// StartSession creates a login session for the account
func (s *AccountServiceImpl) StartSession(ctx context.Context, accountID string) (*models.WebSession, error) {
	session := models.NewWebSession(accountID, s.sessionTTL)
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	// opportunistic cleanup, a failure here doesn't affect the new session
	if n, err := s.sessions.DeleteExpired(ctx, s.now().UTC()); err != nil {
		log.Printf("[WARN] failed to purge expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("[DEBUG] purged %d expired sessions", n)
	}
	return session, nil
}

// ResolveSession returns the account owning a live session token
func (s *AccountServiceImpl) ResolveSession(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	session, err := s.sessions.GetSession(ctx, token)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.sessions.DeleteSession(ctx, token); err != nil {
			log.Printf("[WARN] failed to delete expired session: %v", err)
		}
		return nil, ErrSessionExpired
	}

	account, err := s.accounts.GetAccountByID(ctx, session.AccountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// EndSession logs the session out
func (s *AccountServiceImpl) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}
