package services

import (
	"context"
	"time"

	"github.com/automation-practice/sessionboot/internal/models"
)

// MockAuthFlow is a mock implementation of AuthFlow for testing
type MockAuthFlow struct {
	SignUpFunc              func(models.Credentials) error
	LogInFunc               func(models.Credentials) error
	ExpectAuthenticatedFunc func() error
	StorageStateFunc        func() (*models.StorageState, error)
	CloseFunc               func() error

	calls []string
}

func (m *MockAuthFlow) SignUp(creds models.Credentials) error {
	m.calls = append(m.calls, "signup")
	if m.SignUpFunc != nil {
		return m.SignUpFunc(creds)
	}
	return nil
}

func (m *MockAuthFlow) LogIn(creds models.Credentials) error {
	m.calls = append(m.calls, "login")
	if m.LogInFunc != nil {
		return m.LogInFunc(creds)
	}
	return nil
}

func (m *MockAuthFlow) ExpectAuthenticated() error {
	m.calls = append(m.calls, "expect")
	if m.ExpectAuthenticatedFunc != nil {
		return m.ExpectAuthenticatedFunc()
	}
	return nil
}

func (m *MockAuthFlow) StorageState() (*models.StorageState, error) {
	m.calls = append(m.calls, "state")
	if m.StorageStateFunc != nil {
		return m.StorageStateFunc()
	}
	return &models.StorageState{Cookies: []models.Cookie{{Name: "practice_session", Value: "token"}}}, nil
}

func (m *MockAuthFlow) Close() error {
	m.calls = append(m.calls, "close")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockFlowOpener is a mock implementation of FlowOpener for testing
type MockFlowOpener struct {
	OpenFlowFunc func(context.Context) (AuthFlow, error)
}

func (m *MockFlowOpener) OpenFlow(ctx context.Context) (AuthFlow, error) {
	return m.OpenFlowFunc(ctx)
}

// MockBootstrapper is a mock implementation of Bootstrapper for testing
type MockBootstrapper struct {
	BootstrapFunc func(context.Context, models.Credentials, string) error
	Calls         []models.Credentials
}

func (m *MockBootstrapper) Bootstrap(ctx context.Context, creds models.Credentials, storagePath string) error {
	m.Calls = append(m.Calls, creds)
	if m.BootstrapFunc != nil {
		return m.BootstrapFunc(ctx, creds, storagePath)
	}
	return nil
}

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	CreateAccountFunc        func(context.Context, *models.Account) error
	GetAccountByUsernameFunc func(context.Context, string) (*models.Account, error)
	GetAccountByIDFunc       func(context.Context, string) (*models.Account, error)
	AccountExistsFunc        func(context.Context, string, string) (bool, error)
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, account)
	}
	return nil
}

func (m *MockAccountRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	if m.GetAccountByUsernameFunc != nil {
		return m.GetAccountByUsernameFunc(ctx, username)
	}
	return &models.Account{Username: username}, nil
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	if m.GetAccountByIDFunc != nil {
		return m.GetAccountByIDFunc(ctx, id)
	}
	return &models.Account{ID: id}, nil
}

func (m *MockAccountRepository) AccountExists(ctx context.Context, username, email string) (bool, error) {
	if m.AccountExistsFunc != nil {
		return m.AccountExistsFunc(ctx, username, email)
	}
	return false, nil
}

// MockSessionRepository is a mock implementation of SessionRepository for testing
type MockSessionRepository struct {
	CreateSessionFunc func(context.Context, *models.WebSession) error
	GetSessionFunc    func(context.Context, string) (*models.WebSession, error)
	DeleteSessionFunc func(context.Context, string) error
	DeleteExpiredFunc func(context.Context, time.Time) (int64, error)
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *models.WebSession) error {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) GetSession(ctx context.Context, token string) (*models.WebSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, token)
	}
	return &models.WebSession{Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}
