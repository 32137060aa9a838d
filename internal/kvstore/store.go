// Package kvstore defines the durable key-value store that backs every piece of
// datashare state, together with the typed key builder and value codec used to
// address and encode it.
//
// Backends live in sub-packages (memory, badger, leveldb, sqlstore). All of them
// expose the same transactional contract: Update runs a function against a
// read-write view and commits its writes only when the function returns nil.
package kvstore

import (
	"context"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// ErrKeyNotFound is returned by Txn.Get when the key is absent.
var ErrKeyNotFound = apperrors.Wrap(apperrors.ErrNotFound, "key not found")

// Txn is a read-write view over the store valid for the duration of one Update call.
type Txn interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Has reports whether key is present.
	Has(ctx context.Context, key []byte) (bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value []byte) error
}

// Store is a durable key-value store with atomic multi-key updates.
type Store interface {
	// Update runs fn inside a single transaction. Writes made through txn are
	// committed when fn returns nil and discarded otherwise.
	Update(ctx context.Context, fn func(txn Txn) error) error

	// Close releases the resources held by the store.
	Close() error
}
