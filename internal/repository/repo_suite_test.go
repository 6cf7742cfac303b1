package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automation-practice/sessionboot/internal/models"
)

// newAccount builds a stored-ready account with a unique suffix
func newAccount(t *testing.T, suffix string) *models.Account {
	t.Helper()
	account, err := models.NewAccount(models.SignupRequest{
		Username:        "user-" + suffix,
		Email:           "user-" + suffix + "@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, "hash-"+suffix)
	require.NoError(t, err)
	account.CreatedAt = account.CreatedAt.Truncate(time.Second)
	return account
}

// runAccountRepositoryTests exercises AccountRepository against any migrated database
func runAccountRepositoryTests(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	repo := NewAccountRepository(db)

	created := newAccount(t, "a1")
	require.NoError(t, repo.CreateAccount(ctx, created))

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetAccountByUsername(ctx, created.Username)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, created.PasswordHash, got.PasswordHash)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", created.CreatedAt, got.CreatedAt)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetAccountByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Username, got.Username)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := repo.GetAccountByUsername(ctx, "nobody")
		require.ErrorIs(t, err, ErrAccountNotFound)
		_, err = repo.GetAccountByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("exists by username or email", func(t *testing.T) {
		exists, err := repo.AccountExists(ctx, created.Username, "other@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.AccountExists(ctx, "other", created.Email)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.AccountExists(ctx, "other", "other@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := newAccount(t, "a2")
		dup.Username = created.Username
		require.ErrorIs(t, repo.CreateAccount(ctx, dup), ErrDuplicateAccount)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := newAccount(t, "a3")
		dup.Email = created.Email
		require.ErrorIs(t, repo.CreateAccount(ctx, dup), ErrDuplicateAccount)
	})
}

// runSessionRepositoryTests exercises SessionRepository against any migrated database
func runSessionRepositoryTests(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	sessions := NewSessionRepository(db)

	owner := newAccount(t, "s1")
	require.NoError(t, accounts.CreateAccount(ctx, owner))

	now := time.Now().UTC().Truncate(time.Second)
	live := &models.WebSession{Token: "11111111-1111-1111-1111-111111111111", AccountID: owner.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &models.WebSession{Token: "22222222-2222-2222-2222-222222222222", AccountID: owner.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, sessions.CreateSession(ctx, live))
	require.NoError(t, sessions.CreateSession(ctx, stale))

	t.Run("get session", func(t *testing.T) {
		got, err := sessions.GetSession(ctx, live.Token)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, got.AccountID)
		assert.True(t, live.ExpiresAt.Equal(got.ExpiresAt), "expires_at %v != %v", live.ExpiresAt, got.ExpiresAt)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := sessions.GetSession(ctx, "33333333-3333-3333-3333-333333333333")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		removed, err := sessions.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		_, err = sessions.GetSession(ctx, stale.Token)
		require.ErrorIs(t, err, ErrSessionNotFound)
		_, err = sessions.GetSession(ctx, live.Token)
		require.NoError(t, err)
	})

	t.Run("delete session", func(t *testing.T) {
		require.NoError(t, sessions.DeleteSession(ctx, live.Token))
		_, err := sessions.GetSession(ctx, live.Token)
		require.ErrorIs(t, err, ErrSessionNotFound)

		// deleting twice is fine
		require.NoError(t, sessions.DeleteSession(ctx, live.Token))
	})
}
