package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// ErrClientExists is returned when creating a client whose ID is taken.
var ErrClientExists = apperrors.Wrap(apperrors.ErrConflict, "client already exists")

// KVClientRepository stores clients as JSON records under CLIENT,id.
type KVClientRepository struct {
	store kvstore.Store
}

// NewKVClientRepository creates a client repository on store.
func NewKVClientRepository(store kvstore.Store) *KVClientRepository {
	return &KVClientRepository{store: store}
}

// Create stores a new client.
func (r *KVClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		key := clientKey(client.ID)
		exists, err := txn.Has(ctx, key)
		if err != nil {
			return apperrors.Wrap(err, "failed to check client")
		}
		if exists {
			return ErrClientExists
		}
		return apperrors.Wrap(kvstore.SetJSON(ctx, txn, key, client), "failed to create client")
	})
}

// Update replaces an existing client.
func (r *KVClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		key := clientKey(client.ID)
		exists, err := txn.Has(ctx, key)
		if err != nil {
			return apperrors.Wrap(err, "failed to check client")
		}
		if !exists {
			return authDomain.ErrClientNotFound
		}
		return apperrors.Wrap(kvstore.SetJSON(ctx, txn, key, client), "failed to update client")
	})
}

// Get retrieves a client by ID.
func (r *KVClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	var client authDomain.Client
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		return kvstore.GetJSON(ctx, txn, clientKey(clientID), &client)
	})
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, authDomain.ErrClientNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get client")
	}
	return &client, nil
}
