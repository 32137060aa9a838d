package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/kvstore"
)

type dataUseCase struct {
	txManager     kvstore.TxManager
	registryRepo  RegistryRepository
	dataRepo      DataRepository
	accessRepo    AccessRepository
	analyticsRepo AnalyticsRepository
	authorizer    authService.Authorizer
	audit         AuditRecorder
	gate          adminGate
}

// AddPublicData upserts a public value. Admin only.
func (d *dataUseCase) AddPublicData(ctx context.Context, id uint32, key, value string) error {
	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.gate.requireAdmin(ctx); err != nil {
			return err
		}
		return d.putPublic(ctx, domain.ActionAddPublicData, id, key, value)
	})
}

// AddEncryptedData upserts a ciphertext. Admin only.
func (d *dataUseCase) AddEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte) error {
	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.gate.requireAdmin(ctx); err != nil {
			return err
		}
		return d.putEncrypted(ctx, domain.ActionAddEncryptedData, id, key, ciphertext)
	})
}

// WritePublicData upserts a public value on behalf of a WRITE grant holder.
func (d *dataUseCase) WritePublicData(ctx context.Context, id uint32, key, value string, writer uuid.UUID) error {
	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.requireWriter(ctx, id, writer); err != nil {
			return err
		}
		return d.putPublic(ctx, domain.ActionWritePublicData, id, key, value)
	})
}

// WriteEncryptedData upserts a ciphertext on behalf of a WRITE grant holder.
func (d *dataUseCase) WriteEncryptedData(
	ctx context.Context,
	id uint32,
	key string,
	ciphertext []byte,
	writer uuid.UUID,
) error {
	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.requireWriter(ctx, id, writer); err != nil {
			return err
		}
		return d.putEncrypted(ctx, domain.ActionWriteEncryptedData, id, key, ciphertext)
	})
}

func (d *dataUseCase) requireWriter(ctx context.Context, id uint32, writer uuid.UUID) error {
	if err := d.authorizer.RequireAuth(ctx, writer); err != nil {
		return err
	}
	granted, err := d.accessRepo.GetGrant(ctx, domain.PermissionWrite, writer, id)
	if err != nil {
		return err
	}
	if !granted {
		return domain.ErrAuthorization
	}
	return nil
}

func (d *dataUseCase) putPublic(ctx context.Context, action authDomain.Action, id uint32, key, value string) error {
	if err := requireTokenExists(ctx, d.registryRepo, id); err != nil {
		return err
	}
	if err := d.dataRepo.PutPublicData(ctx, id, key, value); err != nil {
		return err
	}
	return d.audit.Record(ctx, authDomain.AuditEntry{
		Action:   action,
		TokenID:  &id,
		Key:      key,
		Metadata: map[string]any{"size": len(value)},
	})
}

func (d *dataUseCase) putEncrypted(
	ctx context.Context,
	action authDomain.Action,
	id uint32,
	key string,
	ciphertext []byte,
) error {
	if err := requireTokenExists(ctx, d.registryRepo, id); err != nil {
		return err
	}
	if err := d.dataRepo.PutEncryptedData(ctx, id, key, ciphertext); err != nil {
		return err
	}
	return d.audit.Record(ctx, authDomain.AuditEntry{
		Action:   action,
		TokenID:  &id,
		Key:      key,
		Metadata: map[string]any{"size": len(ciphertext)},
	})
}

// ReadPublicData returns the value under key or NoDataFound, counting the read
// either way.
func (d *dataUseCase) ReadPublicData(ctx context.Context, id uint32, key string) (string, error) {
	result := domain.NoDataFound
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		data, err := d.dataRepo.GetPublicData(ctx, id)
		if err != nil {
			return err
		}
		if value, ok := data[key]; ok {
			result = value
		}
		return d.analyticsRepo.IncrementAccessCount(ctx, id)
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// GetEncryptedData returns the ciphertext under key, empty when absent, and
// counts the read.
func (d *dataUseCase) GetEncryptedData(ctx context.Context, id uint32, key string) ([]byte, error) {
	result := []byte{}
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		value, err := lookupEncrypted(ctx, d.dataRepo, id, key)
		if err != nil {
			return err
		}
		result = value
		return d.analyticsRepo.IncrementAccessCount(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllPublicData returns the whole public map, empty when absent.
func (d *dataUseCase) GetAllPublicData(ctx context.Context, id uint32) (map[string]string, error) {
	var data map[string]string
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		data, err = d.dataRepo.GetPublicData(ctx, id)
		return err
	})
	return data, err
}

// HasPublicData reports whether the public tier exists.
func (d *dataUseCase) HasPublicData(ctx context.Context, id uint32) (bool, error) {
	var has bool
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		has, err = d.dataRepo.HasPublicData(ctx, id)
		return err
	})
	return has, err
}

// HasEncryptedData reports whether the encrypted tier exists.
func (d *dataUseCase) HasEncryptedData(ctx context.Context, id uint32) (bool, error) {
	var has bool
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		has, err = d.dataRepo.HasEncryptedData(ctx, id)
		return err
	})
	return has, err
}

// lookupEncrypted returns the ciphertext under key, empty when absent.
func lookupEncrypted(ctx context.Context, dataRepo DataRepository, id uint32, key string) ([]byte, error) {
	data, err := dataRepo.GetEncryptedData(ctx, id)
	if err != nil {
		return nil, err
	}
	if value, ok := data[key]; ok {
		return value, nil
	}
	return []byte{}, nil
}

// NewDataUseCase creates a new DataUseCase with the provided dependencies.
func NewDataUseCase(
	txManager kvstore.TxManager,
	registryRepo RegistryRepository,
	dataRepo DataRepository,
	accessRepo AccessRepository,
	analyticsRepo AnalyticsRepository,
	authorizer authService.Authorizer,
	audit AuditRecorder,
) DataUseCase {
	return &dataUseCase{
		txManager:     txManager,
		registryRepo:  registryRepo,
		dataRepo:      dataRepo,
		accessRepo:    accessRepo,
		analyticsRepo: analyticsRepo,
		authorizer:    authorizer,
		audit:         audit,
		gate:          adminGate{registryRepo: registryRepo, authorizer: authorizer},
	}
}
