// Package usecase defines and implements the business logic for clients,
// bearer tokens and the audit log.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *authDomain.Client) error
	Update(ctx context.Context, client *authDomain.Client) error
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error
	Update(ctx context.Context, token *authDomain.Token) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
}

// AuditLogRepository defines persistence operations for audit logs.
type AuditLogRepository interface {
	// Append assigns the next sequence to log, calls prepare and stores the result.
	Append(ctx context.Context, log *authDomain.AuditLog, prepare func(log *authDomain.AuditLog) error) error
	Get(ctx context.Context, sequence uint64) (*authDomain.AuditLog, error)
	List(ctx context.Context, offset, limit int) ([]*authDomain.AuditLog, error)
	Count(ctx context.Context) (uint64, error)
}

// ClientUseCase manages client lifecycle.
type ClientUseCase interface {
	// Create registers a client with a generated secret. The plain secret is
	// returned once.
	Create(ctx context.Context, input *authDomain.CreateClientInput) (*authDomain.CreateClientOutput, error)

	// Get retrieves a client by ID.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)

	// Delete deactivates a client. Its grants remain but it can no longer authenticate.
	Delete(ctx context.Context, clientID uuid.UUID) error

	// Unlock clears a lockout caused by failed authentication attempts.
	Unlock(ctx context.Context, clientID uuid.UUID) error
}

// TokenUseCase issues and validates bearer tokens.
type TokenUseCase interface {
	Issue(ctx context.Context, input *authDomain.IssueTokenInput) (*authDomain.IssueTokenOutput, error)
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)
	Revoke(ctx context.Context, tokenHash string) error
}

// AuditLogUseCase records, lists and verifies audit logs.
type AuditLogUseCase interface {
	// Record appends a signed entry attributed to the caller in ctx. It joins
	// the transaction carried by ctx.
	Record(ctx context.Context, entry authDomain.AuditEntry) error

	// List returns entries newest first.
	List(ctx context.Context, offset, limit int) ([]*authDomain.AuditLog, error)

	// Verify checks the signature of every stored entry.
	Verify(ctx context.Context) (*authDomain.VerificationReport, error)
}
