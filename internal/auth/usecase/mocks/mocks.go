// Package mocks provides testify mocks of the auth use cases for handler and
// decorator tests.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// MockClientUseCase is a mock implementation of ClientUseCase.
type MockClientUseCase struct {
	mock.Mock
}

// NewMockClientUseCase creates a MockClientUseCase that asserts its
// expectations when the test ends.
func NewMockClientUseCase(t *testing.T) *MockClientUseCase {
	m := &MockClientUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of ClientUseCase.
func (m *MockClientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateClientOutput), args.Error(1)
}

// Get mocks the Get method of ClientUseCase.
func (m *MockClientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

// Delete mocks the Delete method of ClientUseCase.
func (m *MockClientUseCase) Delete(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// Unlock mocks the Unlock method of ClientUseCase.
func (m *MockClientUseCase) Unlock(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// MockTokenUseCase is a mock implementation of TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

// NewMockTokenUseCase creates a MockTokenUseCase that asserts its
// expectations when the test ends.
func NewMockTokenUseCase(t *testing.T) *MockTokenUseCase {
	m := &MockTokenUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks the Issue method of TokenUseCase.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssueTokenOutput), args.Error(1)
}

// Authenticate mocks the Authenticate method of TokenUseCase.
func (m *MockTokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

// Revoke mocks the Revoke method of TokenUseCase.
func (m *MockTokenUseCase) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase.
type MockAuditLogUseCase struct {
	mock.Mock
}

// NewMockAuditLogUseCase creates a MockAuditLogUseCase that asserts its
// expectations when the test ends.
func NewMockAuditLogUseCase(t *testing.T) *MockAuditLogUseCase {
	m := &MockAuditLogUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Record mocks the Record method of AuditLogUseCase.
func (m *MockAuditLogUseCase) Record(ctx context.Context, entry authDomain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// List mocks the List method of AuditLogUseCase.
func (m *MockAuditLogUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

// Verify mocks the Verify method of AuditLogUseCase.
func (m *MockAuditLogUseCase) Verify(ctx context.Context) (*authDomain.VerificationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.VerificationReport), args.Error(1)
}
