// Package memory provides an in-process kvstore.Store backed by a Go map.
// Data does not survive a restart; it is used by tests and the "memory" driver.
package memory

import (
	"context"
	"sync"

	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// ErrClosed is returned by Update after Close.
var ErrClosed = apperrors.New("memory store closed")

// Store is a map-backed kvstore.Store.
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Update runs fn with exclusive access to the map. Writes are buffered and
// applied only when fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(txn kvstore.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	t := &txn{store: s, writes: make(map[string][]byte)}
	if err := fn(t); err != nil {
		return err
	}

	for k, v := range t.writes {
		s.data[k] = v
	}
	return nil
}

// Len returns the number of committed keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Close marks the store closed and drops its contents.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}

type txn struct {
	store  *Store
	writes map[string][]byte
}

func (t *txn) Get(_ context.Context, key []byte) ([]byte, error) {
	if v, ok := t.writes[string(key)]; ok {
		return append([]byte{}, v...), nil
	}
	if v, ok := t.store.data[string(key)]; ok {
		return append([]byte{}, v...), nil
	}
	return nil, kvstore.ErrKeyNotFound
}

func (t *txn) Has(_ context.Context, key []byte) (bool, error) {
	if _, ok := t.writes[string(key)]; ok {
		return true, nil
	}
	_, ok := t.store.data[string(key)]
	return ok, nil
}

func (t *txn) Set(_ context.Context, key, value []byte) error {
	t.writes[string(key)] = append([]byte{}, value...)
	return nil
}
