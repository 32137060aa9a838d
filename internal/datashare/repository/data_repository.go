package repository

import (
	"context"

	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// KVDataRepository stores the public and encrypted data tiers. Each tier of a
// token is a single map value; a tier exists once anything was written to it.
type KVDataRepository struct {
	store kvstore.Store
}

// NewKVDataRepository creates a data repository on store.
func NewKVDataRepository(store kvstore.Store) *KVDataRepository {
	return &KVDataRepository{store: store}
}

// GetPublicData returns the public map of a token, empty when absent.
func (r *KVDataRepository) GetPublicData(ctx context.Context, id uint32) (map[string]string, error) {
	data := map[string]string{}
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		value, ok, err := getOptional(ctx, txn, publicDataKey(id))
		if err != nil || !ok {
			return apperrors.Wrap(err, "failed to get public data")
		}
		data, err = kvstore.DecodeStringMap(value)
		return apperrors.Wrapf(err, "public data %d", id)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// PutPublicData upserts key in the public map of a token.
func (r *KVDataRepository) PutPublicData(ctx context.Context, id uint32, key, value string) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		data, err := r.GetPublicData(kvstore.WithTxn(ctx, txn), id)
		if err != nil {
			return err
		}
		data[key] = value
		err = txn.Set(ctx, publicDataKey(id), kvstore.EncodeStringMap(data))
		return apperrors.Wrap(err, "failed to put public data")
	})
}

// HasPublicData reports whether the public tier of a token exists.
func (r *KVDataRepository) HasPublicData(ctx context.Context, id uint32) (bool, error) {
	return r.has(ctx, publicDataKey(id))
}

// GetEncryptedData returns the encrypted map of a token, empty when absent.
func (r *KVDataRepository) GetEncryptedData(ctx context.Context, id uint32) (map[string][]byte, error) {
	data := map[string][]byte{}
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		value, ok, err := getOptional(ctx, txn, encryptedDataKey(id))
		if err != nil || !ok {
			return apperrors.Wrap(err, "failed to get encrypted data")
		}
		data, err = kvstore.DecodeBytesMap(value)
		return apperrors.Wrapf(err, "encrypted data %d", id)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// PutEncryptedData upserts key in the encrypted map of a token. The
// ciphertext is stored as given.
func (r *KVDataRepository) PutEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		data, err := r.GetEncryptedData(kvstore.WithTxn(ctx, txn), id)
		if err != nil {
			return err
		}
		data[key] = ciphertext
		err = txn.Set(ctx, encryptedDataKey(id), kvstore.EncodeBytesMap(data))
		return apperrors.Wrap(err, "failed to put encrypted data")
	})
}

// HasEncryptedData reports whether the encrypted tier of a token exists.
func (r *KVDataRepository) HasEncryptedData(ctx context.Context, id uint32) (bool, error) {
	return r.has(ctx, encryptedDataKey(id))
}

func (r *KVDataRepository) has(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		var err error
		exists, err = txn.Has(ctx, key)
		return apperrors.Wrap(err, "failed to check data tier")
	})
	return exists, err
}
