// Package database contains the PostgreSQL queries and transaction helpers.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matt-dz/foodgram/internal/sql"
)

const maxTxAttempts = 3

type Pool interface {
	DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Store is a Querier that can also run a function inside a transaction.
type Store interface {
	Querier
	InTx(ctx context.Context, opts pgx.TxOptions, fn func(Querier) error) error
}

type Database struct {
	Querier

	pool Pool
}

var _ Store = (*Database)(nil)

func NewDatabase(pool Pool) *Database {
	return &Database{
		Querier: New(pool),
		pool:    pool,
	}
}

// Close releases the underlying pool.
func (d *Database) Close() {
	if c, ok := d.pool.(interface{ Close() }); ok {
		c.Close()
	}
}

// Connect opens a pool and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// InTx runs fn in a transaction, committing when fn returns nil. The whole
// transaction is retried when PostgreSQL aborts it with a serialization
// failure, so fn must not have side effects outside the database.
func (d *Database) InTx(ctx context.Context, opts pgx.TxOptions, fn func(Querier) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = d.inTx(ctx, opts, fn)
		if err == nil || !IsSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (d *Database) inTx(ctx context.Context, opts pgx.TxOptions, fn func(Querier) error) (err error) {
	if d.pool == nil {
		return errors.New("database has no connection pool")
	}

	tx, err := d.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(New(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// EnsureSchema ensures the database schema is applied to the
// Postgres database. The schema is applied to the database
// if the schema is not detected.
func (d *Database) EnsureSchema(ctx context.Context) error {
	exists, err := d.CheckUsersTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := d.pool.Exec(ctx, sql.Schema()); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}
