package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getenvFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadPostgresConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		errText string
	}{
		{
			name: "complete",
			env:  map[string]string{"POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p", "POSTGRES_DB": "d", "POSTGRES_HOSTNAME": "h"},
		},
		{name: "missing user", env: map[string]string{"POSTGRES_PASSWORD": "p", "POSTGRES_DB": "d", "POSTGRES_HOSTNAME": "h"}, errText: "POSTGRES_USER"},
		{name: "missing password", env: map[string]string{"POSTGRES_USER": "u", "POSTGRES_DB": "d", "POSTGRES_HOSTNAME": "h"}, errText: "POSTGRES_PASSWORD"},
		{name: "missing db", env: map[string]string{"POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p", "POSTGRES_HOSTNAME": "h"}, errText: "POSTGRES_DB"},
		{name: "missing host", env: map[string]string{"POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p", "POSTGRES_DB": "d"}, errText: "POSTGRES_HOSTNAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPostgresConfig(getenvFrom(tt.env))
			if tt.errText != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "host=h user=u password=p dbname=d sslmode=disable", cfg.ConnectionString())
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		driver string
		dsn    string
	}{
		{name: "default sqlite", env: map[string]string{}, driver: DriverSQLite, dsn: DefaultSQLitePath},
		{name: "sqlite path", env: map[string]string{"DATABASE_URL": "/tmp/site.db"}, driver: DriverSQLite, dsn: "/tmp/site.db"},
		{
			name:   "postgres url",
			env:    map[string]string{"DATABASE_URL": "postgres://u:p@localhost/db?sslmode=disable"},
			driver: DriverPostgres,
			dsn:    "postgres://u:p@localhost/db?sslmode=disable",
		},
		{name: "postgresql url", env: map[string]string{"DATABASE_URL": "PostgreSQL://h/db"}, driver: DriverPostgres, dsn: "PostgreSQL://h/db"},
		{
			name:   "postgres vars",
			env:    map[string]string{"POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p", "POSTGRES_DB": "d", "POSTGRES_HOSTNAME": "h"},
			driver: DriverPostgres,
			dsn:    "host=h user=u password=p dbname=d sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadDatabaseConfig(getenvFrom(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.driver, cfg.Driver)
			assert.Equal(t, tt.dsn, cfg.DSN)
		})
	}

	t.Run("incomplete postgres vars", func(t *testing.T) {
		_, err := LoadDatabaseConfig(getenvFrom(map[string]string{"POSTGRES_HOSTNAME": "h"}))
		require.Error(t, err)
	})
}
