// Package http provides the gin handlers and middleware for client
// authentication, token issuance and the audit log.
package http

import (
	"context"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
)

// clientKey is a context key type for storing authenticated clients.
type clientKey struct{}

// WithClient stores an authenticated client in the context and makes its ID
// the caller identity seen by gated operations.
func WithClient(ctx context.Context, client *authDomain.Client) context.Context {
	ctx = context.WithValue(ctx, clientKey{}, client)
	return authService.WithCaller(ctx, client.ID)
}

// GetClient retrieves an authenticated client from the context.
func GetClient(ctx context.Context) (*authDomain.Client, bool) {
	client, ok := ctx.Value(clientKey{}).(*authDomain.Client)
	return client, ok
}
