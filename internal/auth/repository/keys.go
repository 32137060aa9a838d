// Package repository persists clients, bearer tokens and audit logs in the
// shared key-value store. Every method runs inside the transaction carried by
// ctx when there is one.
package repository

import (
	"github.com/google/uuid"

	"github.com/allisson/datashare/internal/kvstore"
)

const (
	categoryClient       kvstore.Category = "CLIENT"
	categoryAuthToken    kvstore.Category = "AUTHTOK"
	categoryAuditCounter kvstore.Category = "AUDCNT"
	categoryAuditLog     kvstore.Category = "AUDIT"
)

func clientKey(id uuid.UUID) []byte {
	return kvstore.NewKey(categoryClient).UUID(id).Bytes()
}

func tokenKey(tokenHash string) []byte {
	return kvstore.NewKey(categoryAuthToken).String(tokenHash).Bytes()
}

func auditCounterKey() []byte {
	return kvstore.NewKey(categoryAuditCounter).Bytes()
}

func auditLogKey(sequence uint64) []byte {
	return kvstore.NewKey(categoryAuditLog).Uint64(sequence).Bytes()
}
