// Package usecase implements the data registry: the registry itself, the two
// data tiers, the access controller and analytics. Every operation runs as one
// atomic unit through kvstore.TxManager.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	"github.com/allisson/datashare/internal/datashare/domain"
)

// RegistryRepository persists the admin identity, token counter and token records.
type RegistryRepository interface {
	GetAdmin(ctx context.Context) (uuid.UUID, bool, error)
	SetAdmin(ctx context.Context, admin uuid.UUID) error
	GetTokenCounter(ctx context.Context) (uint32, error)
	SetTokenCounter(ctx context.Context, counter uint32) error
	CreateToken(ctx context.Context, token *domain.Token) error
	GetToken(ctx context.Context, id uint32) (*domain.Token, error)
	TokenExists(ctx context.Context, id uint32) (bool, error)
}

// DataRepository persists the public and encrypted data tiers.
type DataRepository interface {
	GetPublicData(ctx context.Context, id uint32) (map[string]string, error)
	PutPublicData(ctx context.Context, id uint32, key, value string) error
	HasPublicData(ctx context.Context, id uint32) (bool, error)
	GetEncryptedData(ctx context.Context, id uint32) (map[string][]byte, error)
	PutEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte) error
	HasEncryptedData(ctx context.Context, id uint32) (bool, error)
}

// AccessRepository persists access grants and pending access requests.
type AccessRepository interface {
	GetGrant(ctx context.Context, permission domain.Permission, identity uuid.UUID, id uint32) (bool, error)
	SetGrant(ctx context.Context, permission domain.Permission, identity uuid.UUID, id uint32, granted bool) error
	ListRequests(ctx context.Context, id uint32) ([]domain.AccessRequest, error)
	SaveRequests(ctx context.Context, id uint32, requests []domain.AccessRequest) error
}

// AnalyticsRepository persists the per-token read counters.
type AnalyticsRepository interface {
	GetAccessCount(ctx context.Context, id uint32) (uint32, error)
	IncrementAccessCount(ctx context.Context, id uint32) error
	SumAccessCounts(ctx context.Context, n uint32) (uint64, error)
}

// AuditRecorder appends entries to the signed audit log inside the current
// transaction.
type AuditRecorder interface {
	Record(ctx context.Context, entry authDomain.AuditEntry) error
}

// RegistryUseCase owns the admin identity and token registration.
type RegistryUseCase interface {
	// Initialize sets the admin identity. A second call fails with
	// ErrAlreadyInitialized.
	Initialize(ctx context.Context, admin uuid.UUID) error

	// RequireAdmin fails unless the caller in ctx is the admin.
	RequireAdmin(ctx context.Context) error

	// CreateToken registers a token and returns its id. Admin only.
	CreateToken(ctx context.Context, name, description string) (uint32, error)

	// GetTokenInfo returns the token record, or a record with empty name and
	// description when id was never assigned.
	GetTokenInfo(ctx context.Context, id uint32) (*domain.Token, error)

	// GetTotalTokens returns the number of registered tokens.
	GetTotalTokens(ctx context.Context) (uint32, error)
}

// DataUseCase manages the public and encrypted data tiers.
type DataUseCase interface {
	AddPublicData(ctx context.Context, id uint32, key, value string) error
	AddEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte) error

	// WritePublicData and WriteEncryptedData let a system holding a WRITE
	// grant upsert data. The caller in ctx must be writer.
	WritePublicData(ctx context.Context, id uint32, key, value string, writer uuid.UUID) error
	WriteEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte, writer uuid.UUID) error

	// ReadPublicData returns the value or domain.NoDataFound and counts the read.
	ReadPublicData(ctx context.Context, id uint32, key string) (string, error)

	// GetEncryptedData returns the ciphertext to any caller and counts the read.
	GetEncryptedData(ctx context.Context, id uint32, key string) ([]byte, error)

	GetAllPublicData(ctx context.Context, id uint32) (map[string]string, error)
	HasPublicData(ctx context.Context, id uint32) (bool, error)
	HasEncryptedData(ctx context.Context, id uint32) (bool, error)
}

// AccessUseCase manages grants, gated encrypted reads and access requests.
type AccessUseCase interface {
	// GrantAccess sets the permission flag to true. Admin only.
	GrantAccess(ctx context.Context, permission domain.Permission, system uuid.UUID, id uint32) error

	// RevokeAccess sets the permission flag to an explicit false. Admin only.
	RevokeAccess(ctx context.Context, permission domain.Permission, system uuid.UUID, id uint32) error

	// HasAccess reports the permission flag, false when never granted.
	HasAccess(ctx context.Context, permission domain.Permission, system uuid.UUID, id uint32) (bool, error)

	// GetAccessGrants reports both permission flags.
	GetAccessGrants(ctx context.Context, system uuid.UUID, id uint32) (*domain.AccessGrants, error)

	// ReadEncryptedData returns the ciphertext when requester holds a READ
	// grant, and empty bytes otherwise without revealing whether key exists.
	// Only granted reads are counted. The caller in ctx must be requester.
	ReadEncryptedData(ctx context.Context, id uint32, key string, requester uuid.UUID) ([]byte, error)

	// RequestAccess files a pending request. The caller in ctx must be requester.
	RequestAccess(ctx context.Context, id uint32, permission domain.Permission, requester uuid.UUID) error

	// ListAccessRequests returns the pending requests of a token. Admin only.
	ListAccessRequests(ctx context.Context, id uint32) ([]domain.AccessRequest, error)

	// ResolveAccessRequest removes a pending request, granting the permission
	// when approve is true. Admin only.
	ResolveAccessRequest(
		ctx context.Context,
		id uint32,
		permission domain.Permission,
		requester uuid.UUID,
		approve bool,
	) error
}

// AnalyticsUseCase exposes read counters and integrity checks.
type AnalyticsUseCase interface {
	GetDataSharingCount(ctx context.Context, id uint32) (uint32, error)

	// GetTotalAccesses sums the counters of every registered token. Its cost
	// grows linearly with the number of tokens.
	GetTotalAccesses(ctx context.Context) (uint64, error)

	GetAccessStats(ctx context.Context, id uint32) (*domain.AccessStats, error)
	GetSystemStats(ctx context.Context) (*domain.SystemStats, error)
	VerifyDataIntegrity(ctx context.Context, id uint32) (*domain.IntegrityReport, error)
}
