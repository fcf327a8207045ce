// Package store implements the local embedded store: one SQLite database
// holding a document table per entity. Rows are JSON documents keyed by id,
// which keeps the table contract schema-free and makes whole-table
// serialization for replication trivial.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pitwall/paddockpress/internal/client/migrations"
	"github.com/pitwall/paddockpress/internal/common"
	"github.com/pitwall/paddockpress/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Store owns the local database handle. Table handles are cheap and may be
// created per call.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the local database at dsn and applies the
// embedded migrations. Use ":memory:" in tests.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Table returns a handle on one of the tracked tables. Unknown names are a
// programmer error: the name is interpolated into SQL and must come from the
// tracked set.
func (s *Store) Table(name string) *Table {
	if !common.IsTrackedTable(name) {
		panic(fmt.Sprintf("store: untracked table %q", name))
	}
	return &Table{db: s.db, name: name}
}

// WithTx runs fn inside one transaction. Table handles obtained from the Tx
// are bound to it, so a clear-then-bulk-insert pair is atomic for readers.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, d dbx.DBTX) error {
		return fn(ctx, &Tx{db: d})
	})
}

// Tx is a transactional view of the store.
type Tx struct {
	db dbx.DBTX
}

// Table returns a handle bound to the transaction.
func (t *Tx) Table(name string) *Table {
	if !common.IsTrackedTable(name) {
		panic(fmt.Sprintf("store: untracked table %q", name))
	}
	return &Table{db: t.db, name: name}
}
