// Package mocks provides testify mocks of the datashare use cases.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/datashare/internal/datashare/domain"
)

// MockRegistryUseCase is a mock implementation of RegistryUseCase.
type MockRegistryUseCase struct {
	mock.Mock
}

// NewMockRegistryUseCase creates a MockRegistryUseCase that asserts its
// expectations when the test ends.
func NewMockRegistryUseCase(t *testing.T) *MockRegistryUseCase {
	m := &MockRegistryUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistryUseCase) Initialize(ctx context.Context, admin uuid.UUID) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *MockRegistryUseCase) RequireAdmin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRegistryUseCase) CreateToken(ctx context.Context, name, description string) (uint32, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *MockRegistryUseCase) GetTokenInfo(ctx context.Context, id uint32) (*domain.Token, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

func (m *MockRegistryUseCase) GetTotalTokens(ctx context.Context) (uint32, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint32), args.Error(1)
}

// MockDataUseCase is a mock implementation of DataUseCase.
type MockDataUseCase struct {
	mock.Mock
}

// NewMockDataUseCase creates a MockDataUseCase that asserts its expectations
// when the test ends.
func NewMockDataUseCase(t *testing.T) *MockDataUseCase {
	m := &MockDataUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDataUseCase) AddPublicData(ctx context.Context, id uint32, key, value string) error {
	return m.Called(ctx, id, key, value).Error(0)
}

func (m *MockDataUseCase) AddEncryptedData(ctx context.Context, id uint32, key string, ciphertext []byte) error {
	return m.Called(ctx, id, key, ciphertext).Error(0)
}

func (m *MockDataUseCase) WritePublicData(
	ctx context.Context,
	id uint32,
	key, value string,
	writer uuid.UUID,
) error {
	return m.Called(ctx, id, key, value, writer).Error(0)
}

func (m *MockDataUseCase) WriteEncryptedData(
	ctx context.Context,
	id uint32,
	key string,
	ciphertext []byte,
	writer uuid.UUID,
) error {
	return m.Called(ctx, id, key, ciphertext, writer).Error(0)
}

func (m *MockDataUseCase) ReadPublicData(ctx context.Context, id uint32, key string) (string, error) {
	args := m.Called(ctx, id, key)
	return args.String(0), args.Error(1)
}

func (m *MockDataUseCase) GetEncryptedData(ctx context.Context, id uint32, key string) ([]byte, error) {
	args := m.Called(ctx, id, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDataUseCase) GetAllPublicData(ctx context.Context, id uint32) (map[string]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockDataUseCase) HasPublicData(ctx context.Context, id uint32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDataUseCase) HasEncryptedData(ctx context.Context, id uint32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAccessUseCase is a mock implementation of AccessUseCase.
type MockAccessUseCase struct {
	mock.Mock
}

// NewMockAccessUseCase creates a MockAccessUseCase that asserts its
// expectations when the test ends.
func NewMockAccessUseCase(t *testing.T) *MockAccessUseCase {
	m := &MockAccessUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccessUseCase) GrantAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) error {
	return m.Called(ctx, permission, system, id).Error(0)
}

func (m *MockAccessUseCase) RevokeAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) error {
	return m.Called(ctx, permission, system, id).Error(0)
}

func (m *MockAccessUseCase) HasAccess(
	ctx context.Context,
	permission domain.Permission,
	system uuid.UUID,
	id uint32,
) (bool, error) {
	args := m.Called(ctx, permission, system, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessUseCase) GetAccessGrants(
	ctx context.Context,
	system uuid.UUID,
	id uint32,
) (*domain.AccessGrants, error) {
	args := m.Called(ctx, system, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessGrants), args.Error(1)
}

func (m *MockAccessUseCase) ReadEncryptedData(
	ctx context.Context,
	id uint32,
	key string,
	requester uuid.UUID,
) ([]byte, error) {
	args := m.Called(ctx, id, key, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAccessUseCase) RequestAccess(
	ctx context.Context,
	id uint32,
	permission domain.Permission,
	requester uuid.UUID,
) error {
	return m.Called(ctx, id, permission, requester).Error(0)
}

func (m *MockAccessUseCase) ListAccessRequests(ctx context.Context, id uint32) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccessRequest), args.Error(1)
}

func (m *MockAccessUseCase) ResolveAccessRequest(
	ctx context.Context,
	id uint32,
	permission domain.Permission,
	requester uuid.UUID,
	approve bool,
) error {
	return m.Called(ctx, id, permission, requester, approve).Error(0)
}

// MockAnalyticsUseCase is a mock implementation of AnalyticsUseCase.
type MockAnalyticsUseCase struct {
	mock.Mock
}

// NewMockAnalyticsUseCase creates a MockAnalyticsUseCase that asserts its
// expectations when the test ends.
func NewMockAnalyticsUseCase(t *testing.T) *MockAnalyticsUseCase {
	m := &MockAnalyticsUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAnalyticsUseCase) GetDataSharingCount(ctx context.Context, id uint32) (uint32, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *MockAnalyticsUseCase) GetTotalAccesses(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockAnalyticsUseCase) GetAccessStats(ctx context.Context, id uint32) (*domain.AccessStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessStats), args.Error(1)
}

func (m *MockAnalyticsUseCase) GetSystemStats(ctx context.Context) (*domain.SystemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemStats), args.Error(1)
}

func (m *MockAnalyticsUseCase) VerifyDataIntegrity(ctx context.Context, id uint32) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}
