package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is an identity able to prove control of its ID by presenting its secret.
// The client ID is the identity used by grants, requests and the admin slot.
type Client struct {
	ID             uuid.UUID  `json:"id"`
	Secret         string     `json:"secret"` //nolint:gosec // hashed client secret (not plaintext)
	Name           string     `json:"name"`
	IsActive       bool       `json:"is_active"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// IsLocked reports whether the client is locked out at now.
func (c *Client) IsLocked(now time.Time) bool {
	return c.LockedUntil != nil && now.Before(*c.LockedUntil)
}

// RegisterFailure records a failed authentication attempt and locks the client
// once maxAttempts consecutive failures have been seen. A non-positive
// maxAttempts disables lockout.
func (c *Client) RegisterFailure(now time.Time, maxAttempts int, lockout time.Duration) {
	c.FailedAttempts++
	if maxAttempts <= 0 || c.FailedAttempts < maxAttempts {
		return
	}
	if lockout <= 0 {
		lockout = DefaultLockoutDuration
	}
	until := now.Add(lockout)
	c.LockedUntil = &until
}

// ResetFailures clears the lockout state.
func (c *Client) ResetFailures() {
	c.FailedAttempts = 0
	c.LockedUntil = nil
}

// CreateClientInput contains the parameters for creating a new client.
// The secret is always generated.
type CreateClientInput struct {
	Name     string
	IsActive bool
}

// CreateClientOutput contains the result of creating a new client.
// SECURITY: PlainSecret is only returned once.
type CreateClientOutput struct {
	ID          uuid.UUID
	PlainSecret string
}

// IssueTokenInput carries the credentials exchanged for a bearer token.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string
}

// IssueTokenOutput contains the issued bearer token.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
