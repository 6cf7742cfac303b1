package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/services"
)

func TestLoginHandler_Get(t *testing.T) {
	h, err := NewLoginHandler(&MockAccountService{}, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, LoginPath+"?registered=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Login - Automation Practice</title>")
	assert.Contains(t, body, `placeholder="Enter your username"`)
	assert.Contains(t, body, `placeholder="Enter your password"`)
	assert.Contains(t, body, ">Login</button>")
	assert.Contains(t, body, "Account created")
}

func TestLoginHandler_GetWithSession(t *testing.T) {
	tests := []struct {
		name         string
		resolveErr   error
		wantStatus   int
		wantLocation string
	}{
		{name: "live session redirects home", wantStatus: http.StatusSeeOther, wantLocation: HomePath},
		{name: "stale session shows form", resolveErr: services.ErrSessionExpired, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAccountService{ResolveSessionFunc: func(_ context.Context, token string) (*models.Account, error) {
				assert.Equal(t, "tok-1", token)
				if tt.resolveErr != nil {
					return nil, tt.resolveErr
				}
				return &models.Account{ID: "acc-1"}, nil
			}}
			h, err := NewLoginHandler(svc, false)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, LoginPath, nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestLoginHandler_Post(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	svc := &MockAccountService{
		AuthenticateFunc: func(_ context.Context, username, password string) (*models.Account, error) {
			if username == "QA User" && password == "StrongPass123" {
				return &models.Account{ID: "acc-1", Username: username}, nil
			}
			return nil, services.ErrInvalidCredentials
		},
		StartSessionFunc: func(_ context.Context, accountID string) (*models.WebSession, error) {
			assert.Equal(t, "acc-1", accountID)
			return &models.WebSession{Token: "tok-1", AccountID: accountID, ExpiresAt: expires}, nil
		},
	}
	h, err := NewLoginHandler(svc, true)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, postForm(LoginPath, url.Values{"username": {"QA User"}, "password": {"StrongPass123"}}))

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, HomePath, w.Header().Get("Location"))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, SessionCookieName, c.Name)
		assert.Equal(t, "tok-1", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.True(t, expires.Equal(c.Expires), "cookie expires with the session")
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, postForm(LoginPath, url.Values{"username": {"QA User"}, "password": {"wrong"}}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `class="error-message"`)
		assert.Contains(t, w.Body.String(), `value="QA User"`)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestLoginHandler_Post_Errors(t *testing.T) {
	tests := []struct {
		name string
		svc  *MockAccountService
	}{
		{
			name: "authenticate fails",
			svc: &MockAccountService{AuthenticateFunc: func(context.Context, string, string) (*models.Account, error) {
				return nil, errors.New("db down")
			}},
		},
		{
			name: "session fails",
			svc: &MockAccountService{StartSessionFunc: func(context.Context, string) (*models.WebSession, error) {
				return nil, errors.New("db down")
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewLoginHandler(tt.svc, false)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, postForm(LoginPath, url.Values{"username": {"QA User"}, "password": {"x"}}))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestLoginHandler_MethodNotAllowed(t *testing.T) {
	h, err := NewLoginHandler(&MockAccountService{}, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, LoginPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
