package repository

import (
	"context"
	"errors"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// KVTokenRepository stores bearer tokens under AUTHTOK,hash.
type KVTokenRepository struct {
	store kvstore.Store
}

// NewKVTokenRepository creates a token repository on store.
func NewKVTokenRepository(store kvstore.Store) *KVTokenRepository {
	return &KVTokenRepository{store: store}
}

// Create stores a token. An existing token with the same hash is replaced.
func (r *KVTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		return apperrors.Wrap(kvstore.SetJSON(ctx, txn, tokenKey(token.TokenHash), token), "failed to create token")
	})
}

// Update replaces an existing token, e.g. to record its revocation.
func (r *KVTokenRepository) Update(ctx context.Context, token *authDomain.Token) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		key := tokenKey(token.TokenHash)
		exists, err := txn.Has(ctx, key)
		if err != nil {
			return apperrors.Wrap(err, "failed to check token")
		}
		if !exists {
			return authDomain.ErrTokenNotFound
		}
		return apperrors.Wrap(kvstore.SetJSON(ctx, txn, key, token), "failed to update token")
	})
}

// GetByTokenHash retrieves a token by the SHA-256 hash of its plain value.
func (r *KVTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	var token authDomain.Token
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		return kvstore.GetJSON(ctx, txn, tokenKey(tokenHash), &token)
	})
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, authDomain.ErrTokenNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get token")
	}
	return &token, nil
}
