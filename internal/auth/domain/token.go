package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an issued bearer token. Only its SHA-256 hash is stored.
type Token struct {
	ID        uuid.UUID  `json:"id"`
	TokenHash string     `json:"token_hash"`
	ClientID  uuid.UUID  `json:"client_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsValid reports whether the token can still be used at now.
func (t *Token) IsValid(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
