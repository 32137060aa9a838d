package domain

import (
	"github.com/allisson/datashare/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrClientNotFound indicates a client with the specified ID was not found.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrTokenNotFound indicates no bearer token matches the presented one.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials covers unknown clients, wrong secrets and unusable tokens alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrClientInactive indicates the client exists but has been deactivated.
	ErrClientInactive = errors.Wrap(errors.ErrForbidden, "client is inactive")

	// ErrClientLocked indicates too many failed authentication attempts.
	ErrClientLocked = errors.Wrap(errors.ErrLocked, "client is locked")

	// ErrAuthorization indicates the caller cannot prove control of the required identity.
	ErrAuthorization = errors.Wrap(errors.ErrForbidden, "caller is not authorized for this identity")

	// ErrSignatureInvalid indicates an audit log entry failed signature verification.
	ErrSignatureInvalid = errors.New("audit log signature invalid")

	// ErrAuditLogNotFound indicates no audit log entry has the requested sequence.
	ErrAuditLogNotFound = errors.Wrap(errors.ErrNotFound, "audit log not found")
)
