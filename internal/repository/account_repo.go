package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/automation-practice/sessionboot/internal/models"
)

// Repository errors
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("username or email already registered")
	ErrSessionNotFound  = errors.New("session not found")
)

// AccountRepository handles database operations for practice site accounts
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new account repository with a specific database connection
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a new account
func (r *AccountRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := r.db.Rebind(`
		INSERT INTO accounts (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateAccount, err)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByUsername retrieves an account by its username
func (r *AccountRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.getAccount(ctx, "username", username)
}

// GetAccountByID retrieves an account by its id
func (r *AccountRepository) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getAccount(ctx, "id", id)
}

// AccountExists returns true if the username or the email is already registered
func (r *AccountRepository) AccountExists(ctx context.Context, username, email string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM accounts WHERE username = ? OR email = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, username, email); err != nil {
		return false, fmt.Errorf("failed to check account: %w", err)
	}
	return count > 0, nil
}

// getAccount loads one account by the given column, column is never user input
func (r *AccountRepository) getAccount(ctx context.Context, column, value string) (*models.Account, error) {
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT id, username, email, password_hash, created_at
		FROM accounts
		WHERE %s = ?
	`, column))

	account := &models.Account{}
	err := r.db.GetContext(ctx, account, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// isUniqueViolation reports whether err is a unique constraint failure from sqlite or postgres
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	return false
}
