package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/kvstore"
)

type auditLogUseCase struct {
	txManager    kvstore.TxManager
	auditLogRepo AuditLogRepository
	signer       authService.AuditSigner
}

// Record appends a signed audit entry attributed to the caller in ctx.
func (a *auditLogUseCase) Record(ctx context.Context, entry authDomain.AuditEntry) error {
	log := &authDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		Caller:    authService.CallerName(ctx),
		Action:    entry.Action,
		TokenID:   entry.TokenID,
		Key:       entry.Key,
		Metadata:  entry.Metadata,
		CreatedAt: time.Now().UTC(),
	}

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		return a.auditLogRepo.Append(ctx, log, func(log *authDomain.AuditLog) error {
			signature, err := a.signer.Sign(log)
			if err != nil {
				return err
			}
			log.Signature = signature
			return nil
		})
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to record audit log")
	}
	return nil
}

// List retrieves audit logs newest first.
func (a *auditLogUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.AuditLog, error) {
	var logs []*authDomain.AuditLog
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		logs, err = a.auditLogRepo.List(ctx, offset, limit)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	return logs, nil
}

// Verify walks every entry in sequence order and checks its signature.
// Entries are read in separate transactions so verification of a long log
// does not hold the store.
func (a *auditLogUseCase) Verify(ctx context.Context) (*authDomain.VerificationReport, error) {
	var count uint64
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		count, err = a.auditLogRepo.Count(ctx)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count audit logs")
	}

	report := &authDomain.VerificationReport{Total: count}
	for seq := range count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var log *authDomain.AuditLog
		err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
			var err error
			log, err = a.auditLogRepo.Get(ctx, seq)
			return err
		})
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to read audit log %d", seq)
		}

		// A stored entry must sit at its own sequence number.
		if log.Sequence != seq {
			report.Invalid++
			report.InvalidIDs = append(report.InvalidIDs, log.ID)
			continue
		}

		switch err := a.signer.Verify(log); {
		case err == nil:
			report.Valid++
		case errors.Is(err, authDomain.ErrSignatureInvalid):
			report.Invalid++
			report.InvalidIDs = append(report.InvalidIDs, log.ID)
		default:
			return nil, err
		}
	}
	return report, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(
	txManager kvstore.TxManager,
	auditLogRepo AuditLogRepository,
	signer authService.AuditSigner,
) AuditLogUseCase {
	return &auditLogUseCase{
		txManager:    txManager,
		auditLogRepo: auditLogRepo,
		signer:       signer,
	}
}
