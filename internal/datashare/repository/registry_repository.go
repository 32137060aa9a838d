package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/datashare/internal/datashare/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// KVRegistryRepository stores the admin identity, the token counter and
// token records.
type KVRegistryRepository struct {
	store kvstore.Store
}

// NewKVRegistryRepository creates a registry repository on store.
func NewKVRegistryRepository(store kvstore.Store) *KVRegistryRepository {
	return &KVRegistryRepository{store: store}
}

// GetAdmin returns the admin identity and whether one has been set.
func (r *KVRegistryRepository) GetAdmin(ctx context.Context) (uuid.UUID, bool, error) {
	var (
		admin uuid.UUID
		found bool
	)
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		value, ok, err := getOptional(ctx, txn, adminKey())
		if err != nil || !ok {
			return apperrors.Wrap(err, "failed to get admin")
		}
		admin, err = uuid.FromBytes(value)
		if err != nil {
			return apperrors.Wrap(kvstore.ErrCorruptValue, "admin identity")
		}
		found = true
		return nil
	})
	return admin, found, err
}

// SetAdmin stores the admin identity.
func (r *KVRegistryRepository) SetAdmin(ctx context.Context, admin uuid.UUID) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		return apperrors.Wrap(txn.Set(ctx, adminKey(), admin[:]), "failed to set admin")
	})
}

// GetTokenCounter returns the next token id to assign, 0 when unset.
func (r *KVRegistryRepository) GetTokenCounter(ctx context.Context) (uint32, error) {
	var counter uint32
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		var err error
		counter, err = readUint32(ctx, txn, tokenCounterKey())
		return apperrors.Wrap(err, "failed to get token counter")
	})
	return counter, err
}

// SetTokenCounter stores the next token id to assign.
func (r *KVRegistryRepository) SetTokenCounter(ctx context.Context, counter uint32) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		err := txn.Set(ctx, tokenCounterKey(), kvstore.EncodeUint32(counter))
		return apperrors.Wrap(err, "failed to set token counter")
	})
}

// CreateToken stores a token record under its id.
func (r *KVRegistryRepository) CreateToken(ctx context.Context, token *domain.Token) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		value := kvstore.EncodeStrings([]string{token.Name, token.Description})
		return apperrors.Wrap(txn.Set(ctx, tokenKey(token.ID), value), "failed to create token")
	})
}

// GetToken returns the token record, or ErrTokenNotFound.
func (r *KVRegistryRepository) GetToken(ctx context.Context, id uint32) (*domain.Token, error) {
	var token *domain.Token
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		value, ok, err := getOptional(ctx, txn, tokenKey(id))
		if err != nil {
			return apperrors.Wrap(err, "failed to get token")
		}
		if !ok {
			return domain.ErrTokenNotFound
		}
		fields, err := kvstore.DecodeStrings(value)
		if err != nil || len(fields) != 2 {
			return apperrors.Wrapf(kvstore.ErrCorruptValue, "token %d", id)
		}
		token = &domain.Token{ID: id, Name: fields[0], Description: fields[1]}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// TokenExists reports whether a record is stored for id.
func (r *KVRegistryRepository) TokenExists(ctx context.Context, id uint32) (bool, error) {
	var exists bool
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		var err error
		exists, err = txn.Has(ctx, tokenKey(id))
		return apperrors.Wrap(err, "failed to check token")
	})
	return exists, err
}

func readUint32(ctx context.Context, txn kvstore.Txn, key []byte) (uint32, error) {
	value, ok, err := getOptional(ctx, txn, key)
	if err != nil || !ok {
		return 0, err
	}
	return kvstore.DecodeUint32(value)
}
