// Package iowarehouse implements warehouse.Warehouse on top of
// database/sql. This is an impure I/O package.
//
// Redshift and PostgreSQL are reached through the pgx driver, a local
// SQLite file can be used to rehearse a catalog without a cluster.
package iowarehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gnames/dwhetl/pkg/config"
	"github.com/gnames/dwhetl/pkg/warehouse"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// opener returns an open database and a function that releases it.
type opener func(ctx context.Context) (*sql.DB, func(), error)

type sqlWarehouse struct {
	target string
	open   opener
}

// New creates a warehouse for the configured driver (without connecting).
func New(cfg *config.WarehouseConfig) warehouse.Warehouse {
	res := &sqlWarehouse{target: Target(cfg)}
	switch cfg.Driver {
	case "sqlite":
		res.open = sqliteOpener(cfg)
	default:
		res.open = pgxOpener(cfg)
	}
	return res
}

// NewFromDB creates a warehouse on an already opened database.
// The database is not closed when a session ends.
func NewFromDB(db *sql.DB) warehouse.Warehouse {
	return &sqlWarehouse{
		target: "external database",
		open: func(context.Context) (*sql.DB, func(), error) {
			return db, func() {}, nil
		},
	}
}

// Connect opens the database and takes one dedicated connection from it.
// Every statement of a run goes through this connection.
func (w *sqlWarehouse) Connect(ctx context.Context) (warehouse.Conn, error) {
	db, release, err := w.open(ctx)
	if err != nil {
		return nil, ConnectionError(w.target, err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		release()
		return nil, ConnectionError(w.target, err)
	}

	return &session{conn: conn, release: release}, nil
}

// Target describes the database for messages, without the password.
func Target(cfg *config.WarehouseConfig) string {
	if cfg.Driver == "sqlite" {
		return "sqlite:" + cfg.Path
	}
	return fmt.Sprintf("%s@%s:%d/%s",
		cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

// DSN builds the connection URL of the pgx driver.
func DSN(cfg *config.WarehouseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

func pgxOpener(cfg *config.WarehouseConfig) opener {
	return func(ctx context.Context) (*sql.DB, func(), error) {
		poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
		if err != nil {
			return nil, nil, err
		}

		// a run never needs more than its own connection
		poolConfig.MaxConns = 1
		poolConfig.MinConns = 0
		poolConfig.MaxConnLifetime = 0
		poolConfig.MaxConnIdleTime = 0

		// Redshift understands only the simple query protocol reliably.
		poolConfig.ConnConfig.DefaultQueryExecMode =
			pgx.QueryExecModeSimpleProtocol
		poolConfig.ConnConfig.ConnectTimeout =
			time.Duration(cfg.ConnectTimeout) * time.Second

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, err
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		db := stdlib.OpenDBFromPool(pool)
		release := func() {
			_ = db.Close()
			pool.Close()
		}
		return db, release, nil
	}
}

func sqliteOpener(cfg *config.WarehouseConfig) opener {
	return func(ctx context.Context) (*sql.DB, func(), error) {
		db, err := sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, nil, err
		}

		if err = db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		release := func() { _ = db.Close() }
		return db, release, nil
	}
}
