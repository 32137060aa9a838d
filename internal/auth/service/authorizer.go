package service

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
)

type callerKey struct{}

// WithCaller returns a copy of ctx carrying the authenticated caller identity.
func WithCaller(ctx context.Context, identity uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, identity)
}

// CallerFromContext returns the authenticated caller identity, if any.
func CallerFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// CallerName returns the caller identity as recorded in audit logs.
func CallerName(ctx context.Context) string {
	if id, ok := CallerFromContext(ctx); ok {
		return id.String()
	}
	return authDomain.SystemCaller
}

type contextAuthorizer struct{}

// NewAuthorizer returns an Authorizer that compares the caller carried in the
// request context with the required identity.
func NewAuthorizer() Authorizer {
	return &contextAuthorizer{}
}

// RequireAuth returns ErrUnauthorized when ctx carries no caller and
// ErrAuthorization when the caller is a different identity.
func (a *contextAuthorizer) RequireAuth(ctx context.Context, identity uuid.UUID) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return apperrors.ErrUnauthorized
	}
	if caller != identity {
		return authDomain.ErrAuthorization
	}
	return nil
}
