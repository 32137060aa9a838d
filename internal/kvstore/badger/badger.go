// Package badger provides a kvstore.Store backed by Badger v4.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/allisson/datashare/internal/kvstore"
)

// Config holds Badger settings.
type Config struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory (used in tests).
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives Badger's internal log lines. Nil silences them.
	Logger *slog.Logger
}

// Store is a Badger-backed kvstore.Store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a Badger database.
func Open(cfg Config) (*Store, error) {
	path := cfg.Path
	if cfg.InMemory {
		path = ""
	}

	opts := badger.DefaultOptions(path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithValueLogFileSize(100 << 20)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&logger{l: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &Store{db: db}, nil
}

// Update runs fn in a Badger read-write transaction.
func (s *Store) Update(ctx context.Context, fn func(txn kvstore.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(btx *badger.Txn) error {
		return fn(&txn{btx: btx})
	})
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type txn struct {
	btx *badger.Txn
}

func (t *txn) Get(_ context.Context, key []byte) ([]byte, error) {
	item, err := t.btx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, kvstore.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *txn) Has(ctx context.Context, key []byte) (bool, error) {
	_, err := t.btx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Set copies key and value: Badger holds on to both until commit.
func (t *txn) Set(_ context.Context, key, value []byte) error {
	return t.btx.Set(append([]byte{}, key...), append([]byte{}, value...))
}

// logger adapts slog to badger.Logger.
type logger struct {
	l *slog.Logger
}

func (b *logger) Errorf(format string, args ...any) {
	b.l.Error(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (b *logger) Warningf(format string, args ...any) {
	b.l.Warn(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (b *logger) Infof(format string, args ...any) {
	b.l.Info(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (b *logger) Debugf(format string, args ...any) {
	b.l.Debug(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}
