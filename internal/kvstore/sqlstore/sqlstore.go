// Package sqlstore provides a kvstore.Store backed by a single kv_entries
// table in PostgreSQL or MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/allisson/datashare/internal/database"
	"github.com/allisson/datashare/internal/kvstore"
)

type queries struct {
	get    string
	exists string
	upsert string
}

func newQueries(d database.Dialect) queries {
	p1, p2 := d.Placeholder(1), d.Placeholder(2)
	q := queries{
		get:    `SELECT entry_value FROM kv_entries WHERE entry_key = ` + p1,
		exists: `SELECT COUNT(*) FROM kv_entries WHERE entry_key = ` + p1,
	}
	if d == database.DialectPostgres {
		q.upsert = `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (` + p1 + `, ` + p2 + `, NOW())
		ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = NOW()`
	} else {
		q.upsert = `INSERT INTO kv_entries (entry_key, entry_value) VALUES (` + p1 + `, ` + p2 + `)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`
	}
	return q
}

// Store is a SQL-backed kvstore.Store. It does not own the *sql.DB.
type Store struct {
	db        *sql.DB
	txManager database.TxManager
	q         queries
}

// New creates a Store for the given driver ("postgres" or "mysql").
// Transactions run at serializable isolation.
func New(db *sql.DB, driver string) (*Store, error) {
	dialect, err := database.DialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:        db,
		txManager: database.NewTxManager(db, &sql.TxOptions{Isolation: sql.LevelSerializable}),
		q:         newQueries(dialect),
	}, nil
}

// Update runs fn inside a database transaction.
func (s *Store) Update(ctx context.Context, fn func(txn kvstore.Txn) error) error {
	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return fn(&txn{querier: database.QuerierFrom(txCtx, s.db), q: s.q})
	})
}

// Close is a no-op; the connection pool is closed by its owner.
func (s *Store) Close() error {
	return nil
}

type txn struct {
	querier database.Querier
	q       queries
}

func (t *txn) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := t.querier.QueryRowContext(ctx, t.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kvstore.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv entry: %w", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (t *txn) Has(ctx context.Context, key []byte) (bool, error) {
	var n int
	if err := t.querier.QueryRowContext(ctx, t.q.exists, key).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check kv entry: %w", err)
	}
	return n > 0, nil
}

func (t *txn) Set(ctx context.Context, key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := t.querier.ExecContext(ctx, t.q.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set kv entry: %w", err)
	}
	return nil
}
