package repository

import (
	"context"
	"math"

	"github.com/allisson/datashare/internal/datashare/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// KVAnalyticsRepository stores the per-token read counters.
type KVAnalyticsRepository struct {
	store kvstore.Store
}

// NewKVAnalyticsRepository creates an analytics repository on store.
func NewKVAnalyticsRepository(store kvstore.Store) *KVAnalyticsRepository {
	return &KVAnalyticsRepository{store: store}
}

// GetAccessCount returns the read counter of a token, 0 when unset.
func (r *KVAnalyticsRepository) GetAccessCount(ctx context.Context, id uint32) (uint32, error) {
	var count uint32
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		var err error
		count, err = readUint32(ctx, txn, accessCounterKey(id))
		return apperrors.Wrapf(err, "failed to get access count %d", id)
	})
	return count, err
}

// IncrementAccessCount adds one to the read counter of a token. It fails with
// ErrCounterOverflow instead of wrapping.
func (r *KVAnalyticsRepository) IncrementAccessCount(ctx context.Context, id uint32) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		count, err := readUint32(ctx, txn, accessCounterKey(id))
		if err != nil {
			return apperrors.Wrapf(err, "failed to get access count %d", id)
		}
		if count == math.MaxUint32 {
			return domain.ErrCounterOverflow
		}
		err = txn.Set(ctx, accessCounterKey(id), kvstore.EncodeUint32(count+1))
		return apperrors.Wrap(err, "failed to increment access count")
	})
}

// SumAccessCounts adds the read counters of tokens 0..n-1.
func (r *KVAnalyticsRepository) SumAccessCounts(ctx context.Context, n uint32) (uint64, error) {
	var total uint64
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		for id := range n {
			count, err := readUint32(ctx, txn, accessCounterKey(id))
			if err != nil {
				return apperrors.Wrapf(err, "failed to get access count %d", id)
			}
			total += uint64(count)
		}
		return nil
	})
	return total, err
}
