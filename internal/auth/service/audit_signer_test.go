package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

func newTestLog() *authDomain.AuditLog {
	tokenID := uint32(7)
	return &authDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		Sequence:  42,
		Caller:    uuid.Must(uuid.NewV7()).String(),
		Action:    "grant_read_access",
		TokenID:   &tokenID,
		Key:       "diagnosis",
		Metadata:  map[string]any{"system": "lab-1", "granted": true},
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewAuditSigner_EmptyKey(t *testing.T) {
	signer, err := NewAuditSigner(nil)
	assert.ErrorIs(t, err, ErrEmptySigningKey)
	assert.Nil(t, signer)
}

func TestAuditSigner_SignAndVerify(t *testing.T) {
	signer, err := NewAuditSigner([]byte("audit-signing-key"))
	require.NoError(t, err)

	log := newTestLog()
	signature, err := signer.Sign(log)
	require.NoError(t, err)
	assert.Len(t, signature, 32)

	log.Signature = signature
	assert.NoError(t, signer.Verify(log))
}

func TestAuditSigner_Deterministic(t *testing.T) {
	signer, err := NewAuditSigner([]byte("audit-signing-key"))
	require.NoError(t, err)

	log := newTestLog()
	first, err := signer.Sign(log)
	require.NoError(t, err)
	second, err := signer.Sign(log)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAuditSigner_VerifyDetectsTampering(t *testing.T) {
	signer, err := NewAuditSigner([]byte("audit-signing-key"))
	require.NoError(t, err)

	otherToken := uint32(8)
	tests := []struct {
		name   string
		tamper func(log *authDomain.AuditLog)
	}{
		{name: "Sequence", tamper: func(log *authDomain.AuditLog) { log.Sequence++ }},
		{name: "Caller", tamper: func(log *authDomain.AuditLog) { log.Caller = "someone-else" }},
		{name: "Action", tamper: func(log *authDomain.AuditLog) { log.Action = "revoke_read_access" }},
		{name: "TokenID", tamper: func(log *authDomain.AuditLog) { log.TokenID = &otherToken }},
		{name: "TokenID removed", tamper: func(log *authDomain.AuditLog) { log.TokenID = nil }},
		{name: "Key", tamper: func(log *authDomain.AuditLog) { log.Key = "other" }},
		{name: "Metadata", tamper: func(log *authDomain.AuditLog) { log.Metadata["system"] = "lab-2" }},
		{name: "CreatedAt", tamper: func(log *authDomain.AuditLog) { log.CreatedAt = log.CreatedAt.Add(time.Second) }},
		{name: "Signature truncated", tamper: func(log *authDomain.AuditLog) { log.Signature = log.Signature[:16] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newTestLog()
			signature, err := signer.Sign(log)
			require.NoError(t, err)
			log.Signature = signature

			tt.tamper(log)
			assert.ErrorIs(t, signer.Verify(log), authDomain.ErrSignatureInvalid)
		})
	}
}

func TestAuditSigner_DifferentKeys(t *testing.T) {
	signerA, err := NewAuditSigner([]byte("key-a"))
	require.NoError(t, err)
	signerB, err := NewAuditSigner([]byte("key-b"))
	require.NoError(t, err)

	log := newTestLog()
	log.Signature, err = signerA.Sign(log)
	require.NoError(t, err)

	assert.ErrorIs(t, signerB.Verify(log), authDomain.ErrSignatureInvalid)
}

func BenchmarkAuditSigner_Sign(b *testing.B) {
	signer, err := NewAuditSigner([]byte("benchmark-key"))
	if err != nil {
		b.Fatal(err)
	}
	log := newTestLog()

	b.ResetTimer()
	for b.Loop() {
		if _, err := signer.Sign(log); err != nil {
			b.Fatal(err)
		}
	}
}
