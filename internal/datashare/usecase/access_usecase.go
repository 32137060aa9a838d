package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/kvstore"
)

type accessUseCase struct {
	txManager     kvstore.TxManager
	registryRepo  RegistryRepository
	dataRepo      DataRepository
	accessRepo    AccessRepository
	analyticsRepo AnalyticsRepository
	authorizer    authService.Authorizer
	audit         AuditRecorder
	gate          adminGate
	now           func() time.Time
}

// GrantAccess sets the permission flag of system on token id to true.
func (a *accessUseCase) GrantAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) error {
	return a.setGrant(ctx, domain.ActionGrantAccess, permission, system, id, true)
}

// RevokeAccess sets the permission flag of system on token id to false.
func (a *accessUseCase) RevokeAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) error {
	return a.setGrant(ctx, domain.ActionRevokeAccess, permission, system, id, false)
}

func (a *accessUseCase) setGrant(
	ctx context.Context,
	action authDomain.Action,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
	granted bool,
) error {
	if _, err := domain.ParsePermission(string(permission)); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.gate.requireAdmin(ctx); err != nil {
			return err
		}
		if err := requireTokenExists(ctx, a.registryRepo, id); err != nil {
			return err
		}
		if err := a.accessRepo.SetGrant(ctx, permission, system, id, granted); err != nil {
			return err
		}
		return a.audit.Record(ctx, authDomain.AuditEntry{
			Action:  action,
			TokenID: &id,
			Metadata: map[string]any{
				"system":     system.String(),
				"permission": string(permission),
			},
		})
	})
}

// HasAccess reports the permission flag of system on token id.
func (a *accessUseCase) HasAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) (bool, error) {
	if _, err := domain.ParsePermission(string(permission)); err != nil {
		return false, err
	}

	var granted bool
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		granted, err = a.accessRepo.GetGrant(ctx, permission, system, id)
		return err
	})
	return granted, err
}

// GetAccessGrants reports both permission flags of system on token id.
func (a *accessUseCase) GetAccessGrants(ctx context.Context, system uuid.UUID, id uint32) (*domain.AccessGrants, error) {
	grants := &domain.AccessGrants{}
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if grants.Read, err = a.accessRepo.GetGrant(ctx, domain.PermissionRead, system, id); err != nil {
			return err
		}
		grants.Write, err = a.accessRepo.GetGrant(ctx, domain.PermissionWrite, system, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// ReadEncryptedData returns the ciphertext to a READ grant holder.
func (a *accessUseCase) ReadEncryptedData(
	ctx context.Context,
	id uint32,
	key string,
	requester uuid.UUID,
) ([]byte, error) {
	result := []byte{}

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.authorizer.RequireAuth(ctx, requester); err != nil {
			return err
		}

		granted, err := a.accessRepo.GetGrant(ctx, domain.PermissionRead, requester, id)
		if err != nil {
			return err
		}

		if granted {
			if result, err = lookupEncrypted(ctx, a.dataRepo, id, key); err != nil {
				return err
			}
			if err := a.analyticsRepo.IncrementAccessCount(ctx, id); err != nil {
				return err
			}
		}

		return a.audit.Record(ctx, authDomain.AuditEntry{
			Action:   domain.ActionReadEncryptedData,
			TokenID:  &id,
			Key:      key,
			Metadata: map[string]any{"granted": granted},
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RequestAccess files a pending request for permission on token id.
func (a *accessUseCase) RequestAccess(
	ctx context.Context,
	id uint32,
	permission domain.Permission,
	requester uuid.UUID,
) error {
	if _, err := domain.ParsePermission(string(permission)); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.authorizer.RequireAuth(ctx, requester); err != nil {
			return err
		}
		if err := requireTokenExists(ctx, a.registryRepo, id); err != nil {
			return err
		}

		requests, err := a.accessRepo.ListRequests(ctx, id)
		if err != nil {
			return err
		}
		if indexOfRequest(requests, permission, requester) >= 0 {
			return domain.ErrAccessRequestExists
		}

		requests = append(requests, domain.AccessRequest{
			Requester:   requester,
			Permission:  permission,
			RequestedAt: a.now(),
		})
		if err := a.accessRepo.SaveRequests(ctx, id, requests); err != nil {
			return err
		}
		return a.audit.Record(ctx, authDomain.AuditEntry{
			Action:   domain.ActionRequestAccess,
			TokenID:  &id,
			Metadata: map[string]any{"permission": string(permission)},
		})
	})
}

// ListAccessRequests returns the pending requests of token id.
func (a *accessUseCase) ListAccessRequests(ctx context.Context, id uint32) ([]domain.AccessRequest, error) {
	var requests []domain.AccessRequest
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.gate.requireAdmin(ctx); err != nil {
			return err
		}
		var err error
		requests, err = a.accessRepo.ListRequests(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ResolveAccessRequest approves or denies a pending request.
func (a *accessUseCase) ResolveAccessRequest(
	ctx context.Context,
	id uint32,
	permission domain.Permission,
	requester uuid.UUID,
	approve bool,
) error {
	if _, err := domain.ParsePermission(string(permission)); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.gate.requireAdmin(ctx); err != nil {
			return err
		}

		requests, err := a.accessRepo.ListRequests(ctx, id)
		if err != nil {
			return err
		}
		i := indexOfRequest(requests, permission, requester)
		if i < 0 {
			return domain.ErrAccessRequestNotFound
		}

		if err := a.accessRepo.SaveRequests(ctx, id, slices.Delete(requests, i, i+1)); err != nil {
			return err
		}
		if approve {
			if err := a.accessRepo.SetGrant(ctx, permission, requester, id, true); err != nil {
				return err
			}
		}
		return a.audit.Record(ctx, authDomain.AuditEntry{
			Action:  domain.ActionResolveAccessRequest,
			TokenID: &id,
			Metadata: map[string]any{
				"system":     requester.String(),
				"permission": string(permission),
				"approved":   approve,
			},
		})
	})
}

func indexOfRequest(requests []domain.AccessRequest, permission domain.Permission, requester uuid.UUID) int {
	return slices.IndexFunc(requests, func(r domain.AccessRequest) bool {
		return r.Permission == permission && r.Requester == requester
	})
}

// NewAccessUseCase creates a new AccessUseCase with the provided dependencies.
func NewAccessUseCase(
	txManager kvstore.TxManager,
	registryRepo RegistryRepository,
	dataRepo DataRepository,
	accessRepo AccessRepository,
	analyticsRepo AnalyticsRepository,
	authorizer authService.Authorizer,
	audit AuditRecorder,
) AccessUseCase {
	return &accessUseCase{
		txManager:     txManager,
		registryRepo:  registryRepo,
		dataRepo:      dataRepo,
		accessRepo:    accessRepo,
		analyticsRepo: analyticsRepo,
		authorizer:    authorizer,
		audit:         audit,
		gate:          adminGate{registryRepo: registryRepo, authorizer: authorizer},
		now:           func() time.Time { return time.Now().UTC() },
	}
}
