package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/kvstore"
)

// adminGate resolves the stored admin identity and checks the caller against it.
type adminGate struct {
	registryRepo RegistryRepository
	authorizer   authService.Authorizer
}

func (g adminGate) requireAdmin(ctx context.Context) error {
	admin, ok, err := g.registryRepo.GetAdmin(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotInitialized
	}
	return g.authorizer.RequireAuth(ctx, admin)
}

// requireTokenExists fails with ErrTokenNotFound unless id was assigned.
func requireTokenExists(ctx context.Context, registryRepo RegistryRepository, id uint32) error {
	exists, err := registryRepo.TokenExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrTokenNotFound
	}
	return nil
}

type registryUseCase struct {
	txManager    kvstore.TxManager
	registryRepo RegistryRepository
	audit        AuditRecorder
	gate         adminGate
}

// Initialize sets the admin identity once.
func (r *registryUseCase) Initialize(ctx context.Context, admin uuid.UUID) error {
	if admin == uuid.Nil {
		return domain.ErrInvalidAdmin
	}

	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		_, ok, err := r.registryRepo.GetAdmin(ctx)
		if err != nil {
			return err
		}
		if ok {
			return domain.ErrAlreadyInitialized
		}

		if err := r.registryRepo.SetAdmin(ctx, admin); err != nil {
			return err
		}
		return r.audit.Record(ctx, authDomain.AuditEntry{
			Action:   domain.ActionInitialize,
			Metadata: map[string]any{"admin": admin.String()},
		})
	})
}

// RequireAdmin fails unless the caller in ctx is the admin.
func (r *registryUseCase) RequireAdmin(ctx context.Context) error {
	return r.txManager.WithTx(ctx, r.gate.requireAdmin)
}

// CreateToken assigns the next id to a new token record.
func (r *registryUseCase) CreateToken(ctx context.Context, name, description string) (uint32, error) {
	var id uint32

	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.gate.requireAdmin(ctx); err != nil {
			return err
		}

		counter, err := r.registryRepo.GetTokenCounter(ctx)
		if err != nil {
			return err
		}
		if counter == math.MaxUint32 {
			return domain.ErrCounterOverflow
		}

		token := &domain.Token{ID: counter, Name: name, Description: description}
		if err := r.registryRepo.CreateToken(ctx, token); err != nil {
			return err
		}
		if err := r.registryRepo.SetTokenCounter(ctx, counter+1); err != nil {
			return err
		}

		id = counter
		return r.audit.Record(ctx, authDomain.AuditEntry{
			Action:   domain.ActionCreateToken,
			TokenID:  &id,
			Metadata: map[string]any{"name": name},
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetTokenInfo returns the token record or an empty one.
func (r *registryUseCase) GetTokenInfo(ctx context.Context, id uint32) (*domain.Token, error) {
	token := &domain.Token{ID: id}
	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := r.registryRepo.GetToken(ctx, id)
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		token = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// GetTotalTokens returns the token counter.
func (r *registryUseCase) GetTotalTokens(ctx context.Context) (uint32, error) {
	var total uint32
	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		total, err = r.registryRepo.GetTokenCounter(ctx)
		return err
	})
	return total, err
}

// NewRegistryUseCase creates a new RegistryUseCase with the provided dependencies.
func NewRegistryUseCase(
	txManager kvstore.TxManager,
	registryRepo RegistryRepository,
	authorizer authService.Authorizer,
	audit AuditRecorder,
) RegistryUseCase {
	return &registryUseCase{
		txManager:    txManager,
		registryRepo: registryRepo,
		audit:        audit,
		gate:         adminGate{registryRepo: registryRepo, authorizer: authorizer},
	}
}
