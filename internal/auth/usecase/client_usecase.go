package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/kvstore"
)

// Audited client actions.
const (
	ActionCreateClient authDomain.Action = "create_client"
	ActionDeleteClient authDomain.Action = "delete_client"
	ActionUnlockClient authDomain.Action = "unlock_client"
)

type clientUseCase struct {
	txManager       kvstore.TxManager
	clientRepo      ClientRepository
	secretService   authService.SecretService
	auditLogUseCase AuditLogUseCase
}

// Create generates and persists a new client with a random secret.
func (c *clientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Secret:    hashedSecret,
		Name:      input.Name,
		IsActive:  input.IsActive,
		CreatedAt: time.Now().UTC(),
	}

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.clientRepo.Create(ctx, client); err != nil {
			return err
		}
		return c.auditLogUseCase.Record(ctx, authDomain.AuditEntry{
			Action:   ActionCreateClient,
			Metadata: map[string]any{"client_id": client.ID.String(), "name": client.Name},
		})
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Get retrieves a client by ID.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	var client *authDomain.Client
	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		client, err = c.clientRepo.Get(ctx, clientID)
		return err
	})
	return client, err
}

// Delete deactivates a client.
func (c *clientUseCase) Delete(ctx context.Context, clientID uuid.UUID) error {
	return c.mutate(ctx, clientID, ActionDeleteClient, func(client *authDomain.Client) {
		client.IsActive = false
	})
}

// Unlock resets the failed attempt counter and lockout of a client.
func (c *clientUseCase) Unlock(ctx context.Context, clientID uuid.UUID) error {
	return c.mutate(ctx, clientID, ActionUnlockClient, func(client *authDomain.Client) {
		client.ResetFailures()
	})
}

func (c *clientUseCase) mutate(
	ctx context.Context,
	clientID uuid.UUID,
	action authDomain.Action,
	apply func(client *authDomain.Client),
) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		client, err := c.clientRepo.Get(ctx, clientID)
		if err != nil {
			return err
		}

		apply(client)

		if err := c.clientRepo.Update(ctx, client); err != nil {
			return err
		}
		return c.auditLogUseCase.Record(ctx, authDomain.AuditEntry{
			Action:   action,
			Metadata: map[string]any{"client_id": clientID.String()},
		})
	})
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(
	txManager kvstore.TxManager,
	clientRepo ClientRepository,
	secretService authService.SecretService,
	auditLogUseCase AuditLogUseCase,
) ClientUseCase {
	return &clientUseCase{
		txManager:       txManager,
		clientRepo:      clientRepo,
		secretService:   secretService,
		auditLogUseCase: auditLogUseCase,
	}
}
