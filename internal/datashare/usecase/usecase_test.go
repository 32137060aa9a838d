package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authRepository "github.com/allisson/datashare/internal/auth/repository"
	authService "github.com/allisson/datashare/internal/auth/service"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	"github.com/allisson/datashare/internal/datashare/repository"
	"github.com/allisson/datashare/internal/kvstore"
	"github.com/allisson/datashare/internal/kvstore/memory"
)

// fixtureT is satisfied by both *testing.T and *rapid.T.
type fixtureT interface {
	require.TestingT
	Helper()
}

// fixture wires the four use cases on an in-memory store with a real signed
// audit log.
type fixture struct {
	store        *memory.Store
	txManager    kvstore.TxManager
	auditLogRepo *authRepository.KVAuditLogRepository
	auditLogs    authUseCase.AuditLogUseCase
	admin        uuid.UUID

	registry  RegistryUseCase
	data      DataUseCase
	access    AccessUseCase
	analytics AnalyticsUseCase
}

func newFixture(t fixtureT) *fixture {
	t.Helper()

	store := memory.New()

	signer, err := authService.NewAuditSigner([]byte("test-audit-signing-key"))
	require.NoError(t, err)

	txManager := kvstore.NewTxManager(store)
	auditLogRepo := authRepository.NewKVAuditLogRepository(store)
	auditLogs := authUseCase.NewAuditLogUseCase(txManager, auditLogRepo, signer)

	registryRepo := repository.NewKVRegistryRepository(store)
	dataRepo := repository.NewKVDataRepository(store)
	accessRepo := repository.NewKVAccessRepository(store)
	analyticsRepo := repository.NewKVAnalyticsRepository(store)
	authorizer := authService.NewAuthorizer()

	return &fixture{
		store:        store,
		txManager:    txManager,
		auditLogRepo: auditLogRepo,
		auditLogs:    auditLogs,
		admin:        uuid.Must(uuid.NewV7()),
		registry:     NewRegistryUseCase(txManager, registryRepo, authorizer, auditLogs),
		data: NewDataUseCase(
			txManager, registryRepo, dataRepo, accessRepo, analyticsRepo, authorizer, auditLogs,
		),
		access: NewAccessUseCase(
			txManager, registryRepo, dataRepo, accessRepo, analyticsRepo, authorizer, auditLogs,
		),
		analytics: NewAnalyticsUseCase(txManager, registryRepo, dataRepo, analyticsRepo),
	}
}

// adminCtx initializes the registry and returns a context acting as the admin.
func (f *fixture) adminCtx(t fixtureT) context.Context {
	t.Helper()
	require.NoError(t, f.registry.Initialize(context.Background(), f.admin))
	return authService.WithCaller(context.Background(), f.admin)
}

func (f *fixture) createToken(t fixtureT, ctx context.Context) uint32 {
	t.Helper()
	id, err := f.registry.CreateToken(ctx, "token", "description")
	require.NoError(t, err)
	return id
}

func (f *fixture) auditCount(t fixtureT) uint64 {
	t.Helper()
	var count uint64
	err := f.txManager.WithTx(context.Background(), func(ctx context.Context) error {
		var err error
		count, err = f.auditLogRepo.Count(ctx)
		return err
	})
	require.NoError(t, err)
	return count
}

// setRaw overwrites one store entry outside the repositories.
func (f *fixture) setRaw(t fixtureT, key, value []byte) {
	t.Helper()
	err := f.store.Update(context.Background(), func(txn kvstore.Txn) error {
		return txn.Set(context.Background(), key, value)
	})
	require.NoError(t, err)
}

func callerCtx(identity uuid.UUID) context.Context {
	return authService.WithCaller(context.Background(), identity)
}
