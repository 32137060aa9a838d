package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one executed operation. Entries are numbered by a dense,
// monotonically increasing Sequence and signed at creation so later tampering
// with any field is detectable.
type AuditLog struct {
	ID        uuid.UUID      `json:"id"`
	Sequence  uint64         `json:"sequence"`
	Caller    string         `json:"caller"`
	Action    Action         `json:"action"`
	TokenID   *uint32        `json:"token_id,omitempty"`
	Key       string         `json:"key,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Signature []byte         `json:"signature"`
}

// AuditEntry is what callers hand to the audit log; identifiers, sequence,
// timestamp and signature are filled in when it is recorded.
type AuditEntry struct {
	Action   Action
	TokenID  *uint32
	Key      string
	Metadata map[string]any
}

// VerificationReport summarizes a full audit log signature check.
type VerificationReport struct {
	Total      uint64
	Valid      uint64
	Invalid    uint64
	InvalidIDs []uuid.UUID
}

// Passed reports whether every entry carried a valid signature.
func (r *VerificationReport) Passed() bool {
	return r.Invalid == 0
}

// HasSignature reports whether the entry carries an HMAC-SHA256 sized signature.
func (a *AuditLog) HasSignature() bool {
	return len(a.Signature) == 32
}
