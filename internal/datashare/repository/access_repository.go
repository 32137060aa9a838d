package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/datashare/internal/datashare/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// KVAccessRepository stores access grants and pending access requests.
type KVAccessRepository struct {
	store kvstore.Store
}

// NewKVAccessRepository creates an access repository on store.
func NewKVAccessRepository(store kvstore.Store) *KVAccessRepository {
	return &KVAccessRepository{store: store}
}

// GetGrant returns the grant flag for (permission, identity, id), false when
// never set.
func (r *KVAccessRepository) GetGrant(
	ctx context.Context,
	permission domain.Permission,
	identity uuid.UUID,
	id uint32,
) (bool, error) {
	var granted bool
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		value, ok, err := getOptional(ctx, txn, grantKey(permission, identity, id))
		if err != nil || !ok {
			return apperrors.Wrap(err, "failed to get grant")
		}
		granted, err = kvstore.DecodeBool(value)
		return err
	})
	return granted, err
}

// SetGrant stores an explicit grant flag. Revocation writes false rather than
// deleting the entry.
func (r *KVAccessRepository) SetGrant(
	ctx context.Context,
	permission domain.Permission,
	identity uuid.UUID,
	id uint32,
	granted bool,
) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		err := txn.Set(ctx, grantKey(permission, identity, id), kvstore.EncodeBool(granted))
		return apperrors.Wrap(err, "failed to set grant")
	})
}

// ListRequests returns the pending access requests of a token in the order
// they were made.
func (r *KVAccessRepository) ListRequests(ctx context.Context, id uint32) ([]domain.AccessRequest, error) {
	requests := []domain.AccessRequest{}
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		exists, err := txn.Has(ctx, accessRequestsKey(id))
		if err != nil || !exists {
			return apperrors.Wrap(err, "failed to check access requests")
		}
		return kvstore.GetJSON(ctx, txn, accessRequestsKey(id), &requests)
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// SaveRequests replaces the pending access requests of a token.
func (r *KVAccessRepository) SaveRequests(ctx context.Context, id uint32, requests []domain.AccessRequest) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		return apperrors.Wrap(
			kvstore.SetJSON(ctx, txn, accessRequestsKey(id), requests),
			"failed to save access requests",
		)
	})
}
