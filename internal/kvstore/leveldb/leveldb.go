// Package leveldb provides a kvstore.Store backed by goleveldb.
package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/allisson/datashare/internal/kvstore"
)

// Config holds LevelDB settings.
type Config struct {
	// Path is the database directory. Empty opens an in-memory database.
	Path string
	// SyncWrites fsyncs the tables and manifest written by every commit.
	SyncWrites bool
}

// Store is a LevelDB-backed kvstore.Store.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) a LevelDB database.
func Open(cfg Config) (*Store, error) {
	var (
		db  *leveldb.DB
		err error
	)
	if cfg.Path == "" {
		db, err = leveldb.Open(storage.NewMemStorage(), cfg.options())
	} else {
		db, err = leveldb.OpenFile(cfg.Path, cfg.options())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb database: %w", err)
	}
	return &Store{db: db}, nil
}

// options applies SyncWrites at the database level. Transaction writes are
// committed as tables, so per-write options have no effect on them.
func (c Config) options() *opt.Options {
	return &opt.Options{ErrorIfMissing: false, NoSync: !c.SyncWrites}
}

// Update runs fn inside a LevelDB transaction. The transaction is discarded
// when fn fails.
func (s *Store) Update(ctx context.Context, fn func(txn kvstore.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tr, err := s.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("failed to open leveldb transaction: %w", err)
	}

	if err := fn(&txn{tr: tr}); err != nil {
		tr.Discard()
		return err
	}
	return tr.Commit()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type txn struct {
	tr *leveldb.Transaction
}

func (t *txn) Get(_ context.Context, key []byte) ([]byte, error) {
	v, err := t.tr.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, kvstore.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (t *txn) Has(_ context.Context, key []byte) (bool, error) {
	return t.tr.Has(key, nil)
}

func (t *txn) Set(_ context.Context, key, value []byte) error {
	return t.tr.Put(key, value, nil)
}
