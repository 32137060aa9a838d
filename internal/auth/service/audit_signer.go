package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// ErrEmptySigningKey is returned when no audit signing key is configured.
var ErrEmptySigningKey = errors.New("audit signing key is empty")

const signingKeyInfo = "datashare-audit-log-signing-v1"

type auditSigner struct {
	key []byte
}

// NewAuditSigner derives an HMAC-SHA256 key from secret with HKDF-SHA256.
func NewAuditSigner(secret []byte) (AuditSigner, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySigningKey
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	return &auditSigner{key: key}, nil
}

// canonicalize serializes every signed field of log.
// Format: id || sequence || caller || action || has_token || token_id || key || metadata || created_at
// with variable-length fields length-prefixed.
func (a *auditSigner) canonicalize(log *authDomain.AuditLog) ([]byte, error) {
	buf := make([]byte, 0, 256)

	buf = append(buf, log.ID[:]...)
	buf = binary.BigEndian.AppendUint64(buf, log.Sequence)
	buf = appendLengthPrefixed(buf, []byte(log.Caller))
	buf = appendLengthPrefixed(buf, []byte(log.Action))

	if log.TokenID != nil {
		buf = append(buf, 1)
		buf = binary.BigEndian.AppendUint32(buf, *log.TokenID)
	} else {
		buf = append(buf, 0)
	}

	buf = appendLengthPrefixed(buf, []byte(log.Key))

	if len(log.Metadata) > 0 {
		// encoding/json sorts map keys, so the output is deterministic.
		metadata, err := json.Marshal(log.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadata)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = binary.BigEndian.AppendUint64(buf, uint64(log.CreatedAt.UnixNano()))
	return buf, nil
}

func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// Sign returns the 32-byte HMAC-SHA256 signature of log.
func (a *auditSigner) Sign(log *authDomain.AuditLog) ([]byte, error) {
	canonical, err := a.canonicalize(log)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize log: %w", err)
	}

	mac := hmac.New(sha256.New, a.key)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify recomputes the signature of log and compares it in constant time.
func (a *auditSigner) Verify(log *authDomain.AuditLog) error {
	if !log.HasSignature() {
		return authDomain.ErrSignatureInvalid
	}

	expected, err := a.Sign(log)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}
	if !hmac.Equal(log.Signature, expected) {
		return authDomain.ErrSignatureInvalid
	}
	return nil
}
