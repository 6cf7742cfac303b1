package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/automation-practice/sessionboot/internal/models"
)

// SessionRepository persists practice site login sessions
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession stores a new session
func (r *SessionRepository) CreateSession(ctx context.Context, session *models.WebSession) error {
	query := r.db.Rebind(`
		INSERT INTO web_sessions (token, account_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`)

	if _, err := r.db.ExecContext(ctx, query, session.Token, session.AccountID, session.CreatedAt, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by token
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*models.WebSession, error) {
	query := r.db.Rebind(`
		SELECT token, account_id, created_at, expires_at
		FROM web_sessions
		WHERE token = ?
	`)

	session := &models.WebSession{}
	err := r.db.GetContext(ctx, session, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session, deleting an unknown token is not an error
func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	query := r.db.Rebind(`DELETE FROM web_sessions WHERE token = ?`)
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now and returns how many were removed
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM web_sessions WHERE expires_at <= ?`)

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
