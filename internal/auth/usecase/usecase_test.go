package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authRepository "github.com/allisson/datashare/internal/auth/repository"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/kvstore"
	"github.com/allisson/datashare/internal/kvstore/memory"
)

// mockSecretService is a mock implementation of SecretService for testing.
type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (plainSecret string, hashedSecret string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (hashedSecret string, error error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// fixture wires real key-value repositories on an in-memory store.
type fixture struct {
	store        *memory.Store
	txManager    kvstore.TxManager
	clientRepo   *authRepository.KVClientRepository
	tokenRepo    *authRepository.KVTokenRepository
	auditLogRepo *authRepository.KVAuditLogRepository
	signer       authService.AuditSigner
	auditLogs    AuditLogUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })

	signer, err := authService.NewAuditSigner([]byte("test-audit-signing-key"))
	require.NoError(t, err)

	txManager := kvstore.NewTxManager(store)
	auditLogRepo := authRepository.NewKVAuditLogRepository(store)

	return &fixture{
		store:        store,
		txManager:    txManager,
		clientRepo:   authRepository.NewKVClientRepository(store),
		tokenRepo:    authRepository.NewKVTokenRepository(store),
		auditLogRepo: auditLogRepo,
		signer:       signer,
		auditLogs:    NewAuditLogUseCase(txManager, auditLogRepo, signer),
	}
}

func (f *fixture) auditCount(t *testing.T) uint64 {
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
