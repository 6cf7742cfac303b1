package config

import (
	"fmt"
	"strings"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSQLitePath is used when no database is configured
const DefaultSQLitePath = "data/practice.db"

// PostgresConfig holds configuration for PostgreSQL database connection
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
}

// DatabaseConfig selects the practice site's account store
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("POSTGRES_HOSTNAME is required")
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
}

// LoadDatabaseConfig picks the database from DATABASE_URL, then POSTGRES_*, then local sqlite.
// A postgres:// or postgresql:// URL selects PostgreSQL, anything else is a sqlite file path.
func LoadDatabaseConfig(getenv func(string) string) (DatabaseConfig, error) {
	if url := strings.TrimSpace(getenv("DATABASE_URL")); url != "" {
		lower := strings.ToLower(url)
		if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
			return DatabaseConfig{Driver: DriverPostgres, DSN: url}, nil
		}
		return DatabaseConfig{Driver: DriverSQLite, DSN: url}, nil
	}

	if getenv("POSTGRES_HOSTNAME") != "" {
		pg, err := LoadPostgresConfig(getenv)
		if err != nil {
			return DatabaseConfig{}, err
		}
		return DatabaseConfig{Driver: DriverPostgres, DSN: pg.ConnectionString()}, nil
	}

	return DatabaseConfig{Driver: DriverSQLite, DSN: DefaultSQLitePath}, nil
}
