package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/config"
	"github.com/allisson/datashare/internal/kvstore"
)

type tokenUseCase struct {
	config        *config.Config
	txManager     kvstore.TxManager
	clientRepo    ClientRepository
	tokenRepo     TokenRepository
	secretService authService.SecretService
	tokenService  authService.TokenService
	now           func() time.Time
}

// Issue exchanges client credentials for a bearer token.
//
// Unknown clients and wrong secrets both yield ErrInvalidCredentials. A wrong
// secret also counts towards the lockout threshold; the failure is persisted
// even though the call fails. Locked clients get ErrClientLocked and inactive
// clients ErrClientInactive.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	var (
		output  *authDomain.IssueTokenOutput
		authErr error
	)

	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := t.now()

		client, err := t.clientRepo.Get(ctx, input.ClientID)
		if errors.Is(err, authDomain.ErrClientNotFound) {
			authErr = authDomain.ErrInvalidCredentials
			return nil
		}
		if err != nil {
			return err
		}

		if client.IsLocked(now) {
			authErr = authDomain.ErrClientLocked
			return nil
		}
		if !client.IsActive {
			authErr = authDomain.ErrClientInactive
			return nil
		}

		if !t.secretService.CompareSecret(input.ClientSecret, client.Secret) {
			client.RegisterFailure(now, t.config.LockoutMaxAttempts, t.config.LockoutDuration)
			authErr = authDomain.ErrInvalidCredentials
			return t.clientRepo.Update(ctx, client)
		}

		if client.FailedAttempts > 0 || client.LockedUntil != nil {
			client.ResetFailures()
			if err := t.clientRepo.Update(ctx, client); err != nil {
				return err
			}
		}

		plainToken, tokenHash, err := t.tokenService.GenerateToken()
		if err != nil {
			return err
		}

		token := &authDomain.Token{
			ID:        uuid.Must(uuid.NewV7()),
			TokenHash: tokenHash,
			ClientID:  client.ID,
			ExpiresAt: now.Add(t.config.AuthTokenExpiration),
			CreatedAt: now,
		}
		if err := t.tokenRepo.Create(ctx, token); err != nil {
			return err
		}

		output = &authDomain.IssueTokenOutput{
			PlainToken: plainToken,
			ExpiresAt:  token.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if authErr != nil {
		return nil, authErr
	}
	return output, nil
}

// Authenticate returns the active client owning the token with tokenHash.
// Missing, expired and revoked tokens all yield ErrInvalidCredentials.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	var client *authDomain.Client

	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		if err != nil {
			return err
		}

		if !token.IsValid(t.now()) {
			return authDomain.ErrInvalidCredentials
		}

		client, err = t.clientRepo.Get(ctx, token.ClientID)
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		if err != nil {
			return err
		}

		if !client.IsActive {
			return authDomain.ErrClientInactive
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Revoke marks the token with tokenHash as revoked. Revoking an already
// revoked token is a no-op.
func (t *tokenUseCase) Revoke(ctx context.Context, tokenHash string) error {
	return t.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
		if err != nil {
			return err
		}
		if token.RevokedAt != nil {
			return nil
		}
		now := t.now()
		token.RevokedAt = &now
		return t.tokenRepo.Update(ctx, token)
	})
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	txManager kvstore.TxManager,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:        config,
		txManager:     txManager,
		clientRepo:    clientRepo,
		tokenRepo:     tokenRepo,
		secretService: secretService,
		tokenService:  tokenService,
		now:           func() time.Time { return time.Now().UTC() },
	}
}
