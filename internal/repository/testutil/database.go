package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pkgz/testutils/containers"
	"github.com/jmoiron/sqlx"

	"github.com/automation-practice/sessionboot/internal/config"
	"github.com/automation-practice/sessionboot/internal/database"
)

// TestDatabase represents an isolated, migrated test database
type TestDatabase struct {
	DB         *sqlx.DB
	SchemaName string // postgres only
	masterDB   *sqlx.DB
	container  *containers.PostgresTestContainer
}

// SetupSQLiteDatabase creates a migrated sqlite database in a temp dir
func SetupSQLiteDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "practice.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	td := &TestDatabase{DB: db}
	t.Cleanup(func() { td.Teardown(t) })
	return td
}

// SetupPostgresDatabase starts a postgres container and creates an isolated schema for testing
func SetupPostgresDatabase(ctx context.Context, t *testing.T) *TestDatabase {
	t.Helper()

	pg := containers.NewPostgresTestContainerWithDB(ctx, t, "sessionboot_test")
	masterConnStr := pg.ConnectionString()

	masterDB, err := database.Connect(config.DatabaseConfig{Driver: config.DriverPostgres, DSN: masterConnStr})
	if err != nil {
		_ = pg.Close(ctx)
		t.Fatalf("Failed to connect to master database: %v", err)
	}

	// Generate unique schema name for this test
	schemaName := fmt.Sprintf("test_schema_%d_%d", time.Now().UnixNano(), rand.Intn(10000)) //nolint:gosec // not security sensitive
	if _, err = masterDB.Exec(fmt.Sprintf("CREATE SCHEMA %s", schemaName)); err != nil {
		masterDB.Close()
		_ = pg.Close(ctx)
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Connect to the same database but set search_path to the test schema
	testDB, err := database.Connect(config.DatabaseConfig{
		Driver: config.DriverPostgres,
		DSN:    withSearchPath(masterConnStr, schemaName),
	})
	if err != nil {
		masterDB.Exec(fmt.Sprintf("DROP SCHEMA %s CASCADE", schemaName))
		masterDB.Close()
		_ = pg.Close(ctx)
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	td := &TestDatabase{DB: testDB, SchemaName: schemaName, masterDB: masterDB, container: pg}
	if err := database.RunMigrations(testDB); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to run migrations: %v", err)
	}
	t.Cleanup(func() { td.Teardown(t) })
	return td
}

// Teardown closes connections and drops the test schema, safe to call twice
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
		td.DB = nil
	}

	if td.masterDB != nil {
		if _, err := td.masterDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
			t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
		}
		td.masterDB.Close()
		td.masterDB = nil
	}

	if td.container != nil {
		if err := td.container.Close(context.Background()); err != nil {
			t.Logf("Warning: Failed to stop postgres container: %v", err)
		}
		td.container = nil
	}
}

// withSearchPath appends a search_path option to a postgres URL
func withSearchPath(connStr, schema string) string {
	sep := "?"
	if strings.Contains(connStr, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%ssearch_path=%s", connStr, sep, schema)
}
