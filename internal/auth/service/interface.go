// Package service provides technical services for authentication operations:
// secret and token generation, audit log signing and the caller-identity check
// every gated operation performs.
package service

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// SecretService defines operations for client secret generation and validation.
type SecretService interface {
	// GenerateSecret creates a random secret and returns it together with its hash.
	// The plain secret is shown once and never stored.
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService defines operations for bearer token generation and hashing.
type TokenService interface {
	// GenerateToken creates a random token and returns it together with its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	HashToken(plainToken string) string
}

// AuditSigner signs and verifies audit log entries.
type AuditSigner interface {
	// Sign returns the HMAC-SHA256 signature of log.
	Sign(log *authDomain.AuditLog) ([]byte, error)

	// Verify returns ErrSignatureInvalid when log.Signature does not match its contents.
	Verify(log *authDomain.AuditLog) error
}

// Authorizer is the caller-identity primitive consumed by gated operations.
type Authorizer interface {
	// RequireAuth fails unless the caller carried in ctx controls identity.
	RequireAuth(ctx context.Context, identity uuid.UUID) error
}
