package repository

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ketabino/bookshop/db"
)

// Pool sizing for the storefront: traffic is read-heavy and reads are
// served from the in-memory store, so the pool only carries the sync
// worker plus occasional admin writes.
const (
	poolMaxConns        = 8
	poolMinConns        = 2
	poolMaxConnIdleTime = 5 * time.Minute
	poolConnectTimeout  = 10 * time.Second
)

// NewPool creates a pgxpool.Pool sized for the write-through workload and
// configured with shopspring/decimal support for NUMERIC columns.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	return pool, nil
}

func poolConfig(databaseURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse database config")
	}

	cfg.MaxConns = poolMaxConns
	cfg.MinConns = poolMinConns
	cfg.MaxConnIdleTime = poolMaxConnIdleTime
	cfg.ConnConfig.ConnectTimeout = poolConnectTimeout
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	return cfg, nil
}

// RunMigrations executes the embedded DDL schema against the pool. The
// schema is idempotent, so this runs on every boot.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	lg := zctx.From(ctx)

	start := time.Now()
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		return errors.Wrap(err, "apply schema")
	}

	lg.Info("Migrations applied", zap.Duration("took", time.Since(start)))
	return nil
}
