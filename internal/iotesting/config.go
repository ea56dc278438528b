// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/dwhetl/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "dwhetl_test"
)

// GetTestConfig returns a configuration suitable for PostgreSQL
// integration tests. Defaults point to a local PostgreSQL, and
// DWHETL_WAREHOUSE_* environment variables override them. The database
// name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptWarehouseDriver("pgx"),
		config.OptWarehouseHost("localhost"),
		config.OptWarehousePort(5432),
		config.OptWarehouseUser("postgres"),
		config.OptWarehousePassword("postgres"),
		config.OptWarehouseSSLMode("disable"),
		config.OptWarehouseConnectTimeout(5),
	})

	var opts []config.Option
	if s := os.Getenv("DWHETL_WAREHOUSE_HOST"); s != "" {
		opts = append(opts, config.OptWarehouseHost(s))
	}
	if s := os.Getenv("DWHETL_WAREHOUSE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptWarehousePort(port))
		}
	}
	if s := os.Getenv("DWHETL_WAREHOUSE_USER"); s != "" {
		opts = append(opts, config.OptWarehouseUser(s))
	}
	if s := os.Getenv("DWHETL_WAREHOUSE_PASSWORD"); s != "" {
		opts = append(opts, config.OptWarehousePassword(s))
	}
	cfg.Update(opts)

	// Always use test database for safety
	cfg.Warehouse.Database = TestDatabaseName

	return cfg
}

// GetSQLiteConfig returns a configuration with the sqlite driver and a
// database file inside a temporary directory that is removed after the test.
func GetSQLiteConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptWarehouseDriver("sqlite"),
		config.OptWarehousePath(filepath.Join(t.TempDir(), "dwh.sqlite")),
		config.OptHomeDir(t.TempDir()),
	})
	return cfg
}
