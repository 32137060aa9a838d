package kvstore

import (
	"context"
	"sync"
)

// txnKey is a context key type for storing the active transaction.
type txnKey struct{}

// TxManager runs operations atomically against a Store.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// serialTxManager executes one transaction at a time. Each call to WithTx is a
// single invocation of the execution environment: it observes no interleaving
// with any other call and commits or aborts as a unit.
type serialTxManager struct {
	store Store
	mu    sync.Mutex
}

// NewTxManager creates a TxManager that serializes transactions on store.
func NewTxManager(store Store) TxManager {
	return &serialTxManager{store: store}
}

// WithTx executes fn within a store transaction. Nested calls reuse the
// transaction already present in ctx.
func (m *serialTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txnKey{}).(Txn); ok {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.Update(ctx, func(txn Txn) error {
		return fn(context.WithValue(ctx, txnKey{}, txn))
	})
}

// WithTxn returns a copy of ctx carrying txn.
func WithTxn(ctx context.Context, txn Txn) context.Context {
	return context.WithValue(ctx, txnKey{}, txn)
}

// View runs fn against the transaction in ctx, or against a fresh single-use
// transaction on store when ctx carries none.
func View(ctx context.Context, store Store, fn func(txn Txn) error) error {
	if txn, ok := ctx.Value(txnKey{}).(Txn); ok {
		return fn(txn)
	}
	return store.Update(ctx, fn)
}
