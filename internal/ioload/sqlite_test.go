package ioload_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/gnames/dwhetl/internal/ioload"
	"github.com/gnames/dwhetl/internal/iotesting"
	"github.com/gnames/dwhetl/internal/iowarehouse"
	dwhetl "github.com/gnames/dwhetl/pkg"
	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteCatalog declares staging statements in the order the loader
// reverses, so the table has to be created by the last one.
func sqliteCatalog(populate ...catalog.Statement) *catalog.Catalog {
	staging := []catalog.Statement{
		{Name: "events", SQL: "INSERT INTO staging_events VALUES (1, 'a'), (2, 'b'), (3, 'a')"},
		{Name: "create", SQL: "CREATE TABLE staging_events (id INTEGER, usr TEXT)"},
	}
	test := []catalog.Statement{
		{Name: "events", SQL: "INSERT INTO staging_events VALUES (1, 'a')"},
		{Name: "create", SQL: "CREATE TABLE staging_events (id INTEGER, usr TEXT)"},
	}
	return catalog.New(staging, test, populate)
}

func tableRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var res int
	err = db.QueryRow("SELECT count(*) FROM " + table).Scan(&res)
	require.NoError(t, err)
	return res
}

func TestSQLiteLoad(t *testing.T) {
	assert := assert.New(t)
	cfg := iotesting.GetSQLiteConfig(t)
	cat := sqliteCatalog(
		catalog.Statement{Name: "users", SQL: "CREATE TABLE users AS SELECT DISTINCT usr FROM staging_events"},
		catalog.Statement{Name: "facts", SQL: "CREATE TABLE facts AS SELECT id, usr FROM staging_events"},
	)

	var out bytes.Buffer
	wh := iowarehouse.New(&cfg.Warehouse)
	l := ioload.New(cfg, wh, cat, ioload.OptOutput(&out))

	err := l.Load(context.Background(), mode.Full)
	require.NoError(t, err)
	assert.Equal(dwhetl.Done, l.State())
	assert.Equal(
		"* Loading staging tables (all data)\n* Populating star schema\n",
		out.String(),
	)

	assert.Equal(3, tableRows(t, cfg.Warehouse.Path, "staging_events"))
	assert.Equal(2, tableRows(t, cfg.Warehouse.Path, "users"))
	assert.Equal(3, tableRows(t, cfg.Warehouse.Path, "facts"))
}

func TestSQLiteLoadFailureKeepsPrefix(t *testing.T) {
	assert := assert.New(t)
	cfg := iotesting.GetSQLiteConfig(t)
	cat := sqliteCatalog(
		catalog.Statement{Name: "users", SQL: "CREATE TABLE users AS SELECT DISTINCT usr FROM staging_events"},
		catalog.Statement{Name: "broken", SQL: "INSERT INTO no_such_table VALUES (1)"},
		catalog.Statement{Name: "facts", SQL: "CREATE TABLE facts AS SELECT id FROM staging_events"},
	)

	var out bytes.Buffer
	wh := iowarehouse.New(&cfg.Warehouse)
	l := ioload.New(cfg, wh, cat, ioload.OptOutput(&out))

	err := l.Load(context.Background(), mode.Test)
	require.Error(t, err)
	assert.Equal(dwhetl.Failed, l.State())

	se, ok := ioload.AsStatementError(err)
	require.True(t, ok)
	assert.Equal(catalog.Populate, se.List)
	assert.Equal(1, se.Index)
	assert.Equal(4, se.Step)
	assert.Equal(ioload.OpExecute, se.Op)

	assert.Equal(1, tableRows(t, cfg.Warehouse.Path, "staging_events"))
	assert.Equal(1, tableRows(t, cfg.Warehouse.Path, "users"))

	db, err := sql.Open("sqlite", cfg.Warehouse.Path)
	require.NoError(t, err)
	defer db.Close()
	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='facts'",
	).Scan(&name)
	assert.ErrorIs(err, sql.ErrNoRows, "statements after the failure never run")
}
