package database

import (
	"fmt"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the accounts and web_sessions tables
func RunMigrations(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	// types are portable across sqlite and postgres
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(64) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS web_sessions (
			token VARCHAR(36) PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_web_sessions_account ON web_sessions(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_web_sessions_expires ON web_sessions(expires_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	log.Printf("[DEBUG] database migrations completed for %s", db.DriverName())
	return nil
}
