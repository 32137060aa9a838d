package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	"github.com/allisson/datashare/internal/config"
)

func newTokenTestConfig() *config.Config {
	return &config.Config{
		AuthTokenExpiration: time.Hour,
		LockoutMaxAttempts:  3,
		LockoutDuration:     30 * time.Minute,
	}
}

func createTestClient(t *testing.T, f *fixture, active bool) *authDomain.Client {
	t.Helper()
	client := &authDomain.Client{
		ID:       uuid.Must(uuid.NewV7()),
		Secret:   "hashed-secret",
		Name:     "test-client",
		IsActive: active,
	}
	require.NoError(t, f.clientRepo.Create(context.Background(), client))
	return client
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_IssueTokenWithValidCredentials", func(t *testing.T) {
		f := newFixture(t)
		client := createTestClient(t, f, true)

		secrets := &mockSecretService{}
		secrets.On("CompareSecret", "plain-secret", "hashed-secret").Return(true).Once()
		tokens := &mockTokenService{}
		tokens.On("GenerateToken").Return("plain-token", "token-hash", nil).Once()

		uc := NewTokenUseCase(newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, secrets, tokens)
		output, err := uc.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "plain-secret"})
		require.NoError(t, err)
		assert.Equal(t, "plain-token", output.PlainToken)
		assert.WithinDuration(t, time.Now().Add(time.Hour), output.ExpiresAt, time.Minute)

		token, err := f.tokenRepo.GetByTokenHash(ctx, "token-hash")
		require.NoError(t, err)
		assert.Equal(t, client.ID, token.ClientID)

		secrets.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("Error_UnknownClient", func(t *testing.T) {
		f := newFixture(t)
		uc := NewTokenUseCase(
			newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, &mockSecretService{}, &mockTokenService{},
		)

		output, err := uc.Issue(ctx, &authDomain.IssueTokenInput{ClientID: uuid.Must(uuid.NewV7())})
		assert.Nil(t, output)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_InactiveClient", func(t *testing.T) {
		f := newFixture(t)
		client := createTestClient(t, f, false)
		uc := NewTokenUseCase(
			newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, &mockSecretService{}, &mockTokenService{},
		)

		_, err := uc.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "plain-secret"})
		assert.ErrorIs(t, err, authDomain.ErrClientInactive)
	})

	t.Run("Error_WrongSecretLocksClient", func(t *testing.T) {
		f := newFixture(t)
		client := createTestClient(t, f, true)

		secrets := &mockSecretService{}
		secrets.On("CompareSecret", "wrong", "hashed-secret").Return(false).Times(3)

		uc := NewTokenUseCase(newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, secrets, &mockTokenService{})
		input := &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "wrong"}

		for range 3 {
			_, err := uc.Issue(ctx, input)
			assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		}

		stored, err := f.clientRepo.Get(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.FailedAttempts)
		require.NotNil(t, stored.LockedUntil)

		_, err = uc.Issue(ctx, input)
		assert.ErrorIs(t, err, authDomain.ErrClientLocked)
		secrets.AssertExpectations(t)
	})

	t.Run("Success_ResetsFailedAttempts", func(t *testing.T) {
		f := newFixture(t)
		client := createTestClient(t, f, true)
		client.FailedAttempts = 2
		require.NoError(t, f.clientRepo.Update(ctx, client))

		secrets := &mockSecretService{}
		secrets.On("CompareSecret", mock.Anything, mock.Anything).Return(true).Once()
		tokens := &mockTokenService{}
		tokens.On("GenerateToken").Return("plain-token", "token-hash", nil).Once()

		uc := NewTokenUseCase(newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, secrets, tokens)
		_, err := uc.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "plain-secret"})
		require.NoError(t, err)

		stored, err := f.clientRepo.Get(ctx, client.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.FailedAttempts)
	})
}

func TestTokenUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, active bool, token authDomain.Token) (*fixture, TokenUseCase) {
		f := newFixture(t)
		client := createTestClient(t, f, active)
		token.ID = uuid.Must(uuid.NewV7())
		token.ClientID = client.ID
		token.TokenHash = "token-hash"
		require.NoError(t, f.tokenRepo.Create(ctx, &token))
		uc := NewTokenUseCase(
			newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, &mockSecretService{}, &mockTokenService{},
		)
		return f, uc
	}

	t.Run("Success", func(t *testing.T) {
		_, uc := setup(t, true, authDomain.Token{ExpiresAt: time.Now().Add(time.Hour)})
		client, err := uc.Authenticate(ctx, "token-hash")
		require.NoError(t, err)
		assert.Equal(t, "test-client", client.Name)
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		_, uc := setup(t, true, authDomain.Token{ExpiresAt: time.Now().Add(time.Hour)})
		_, err := uc.Authenticate(ctx, "other-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		_, uc := setup(t, true, authDomain.Token{ExpiresAt: time.Now().Add(-time.Minute)})
		_, err := uc.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_InactiveClient", func(t *testing.T) {
		_, uc := setup(t, false, authDomain.Token{ExpiresAt: time.Now().Add(time.Hour)})
		_, err := uc.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrClientInactive)
	})

	t.Run("Error_RevokedToken", func(t *testing.T) {
		_, uc := setup(t, true, authDomain.Token{ExpiresAt: time.Now().Add(time.Hour)})
		require.NoError(t, uc.Revoke(ctx, "token-hash"))
		require.NoError(t, uc.Revoke(ctx, "token-hash"))

		_, err := uc.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}

func TestTokenUseCase_Revoke_NotFound(t *testing.T) {
	f := newFixture(t)
	uc := NewTokenUseCase(
		newTokenTestConfig(), f.txManager, f.clientRepo, f.tokenRepo, &mockSecretService{}, &mockTokenService{},
	)
	err := uc.Revoke(context.Background(), "missing")
	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
}
