package handlers

import (
	"context"

	"github.com/automation-practice/sessionboot/internal/models"
)

// MockAccountService is a mock implementation of services.AccountService
type MockAccountService struct {
	SignUpFunc         func(ctx context.Context, req models.SignupRequest) (*models.Account, error)
	AuthenticateFunc   func(ctx context.Context, username, password string) (*models.Account, error)
	StartSessionFunc   func(ctx context.Context, accountID string) (*models.WebSession, error)
	ResolveSessionFunc func(ctx context.Context, token string) (*models.Account, error)
	EndSessionFunc     func(ctx context.Context, token string) error
}

func (m *MockAccountService) SignUp(ctx context.Context, req models.SignupRequest) (*models.Account, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, req)
	}
	return &models.Account{ID: "acc-1", Username: req.Username, Email: req.Email}, nil
}

func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return &models.Account{ID: "acc-1", Username: username}, nil
}

func (m *MockAccountService) StartSession(ctx context.Context, accountID string) (*models.WebSession, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, accountID)
	}
	return &models.WebSession{Token: "tok-1", AccountID: accountID}, nil
}

func (m *MockAccountService) ResolveSession(ctx context.Context, token string) (*models.Account, error) {
	if m.ResolveSessionFunc != nil {
		return m.ResolveSessionFunc(ctx, token)
	}
	return &models.Account{ID: "acc-1", Username: "QA User"}, nil
}

func (m *MockAccountService) EndSession(ctx context.Context, token string) error {
	if m.EndSessionFunc != nil {
		return m.EndSessionFunc(ctx, token)
	}
	return nil
}
