package repository

import (
	"context"
	"errors"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

// KVAuditLogRepository stores audit logs under AUDIT,sequence. AUDCNT holds the
// number of entries written so far, which is also the next sequence number.
type KVAuditLogRepository struct {
	store kvstore.Store
}

// NewKVAuditLogRepository creates an audit log repository on store.
func NewKVAuditLogRepository(store kvstore.Store) *KVAuditLogRepository {
	return &KVAuditLogRepository{store: store}
}

// Count returns the number of stored entries.
func (r *KVAuditLogRepository) Count(ctx context.Context) (uint64, error) {
	var count uint64
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		var err error
		count, err = readCount(ctx, txn)
		return err
	})
	return count, err
}

// Append assigns the next sequence number to log, lets prepare finish the
// entry (typically signing it) and stores it. prepare runs after Sequence is
// set and before anything is written.
func (r *KVAuditLogRepository) Append(
	ctx context.Context,
	log *authDomain.AuditLog,
	prepare func(log *authDomain.AuditLog) error,
) error {
	return kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		count, err := readCount(ctx, txn)
		if err != nil {
			return err
		}

		log.Sequence = count
		if err := prepare(log); err != nil {
			return err
		}

		if err := kvstore.SetJSON(ctx, txn, auditLogKey(count), log); err != nil {
			return apperrors.Wrap(err, "failed to create audit log")
		}
		return txn.Set(ctx, auditCounterKey(), kvstore.EncodeUint64(count+1))
	})
}

// Get retrieves the entry with the given sequence number.
func (r *KVAuditLogRepository) Get(ctx context.Context, sequence uint64) (*authDomain.AuditLog, error) {
	var log authDomain.AuditLog
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		return kvstore.GetJSON(ctx, txn, auditLogKey(sequence), &log)
	})
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, authDomain.ErrAuditLogNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get audit log")
	}
	return &log, nil
}

// List returns up to limit entries, newest first, skipping the offset newest.
func (r *KVAuditLogRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.AuditLog, error) {
	logs := make([]*authDomain.AuditLog, 0, limit)
	err := kvstore.View(ctx, r.store, func(txn kvstore.Txn) error {
		count, err := readCount(ctx, txn)
		if err != nil {
			return err
		}
		if offset < 0 || uint64(offset) >= count {
			return nil
		}

		for seq := count - 1 - uint64(offset); len(logs) < limit; seq-- {
			var log authDomain.AuditLog
			if err := kvstore.GetJSON(ctx, txn, auditLogKey(seq), &log); err != nil {
				return apperrors.Wrapf(err, "failed to read audit log %d", seq)
			}
			logs = append(logs, &log)
			if seq == 0 {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func readCount(ctx context.Context, txn kvstore.Txn) (uint64, error) {
	raw, err := txn.Get(ctx, auditCounterKey())
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read audit counter")
	}
	return kvstore.DecodeUint64(raw)
}
