package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/datashare/internal/auth/service"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/httputil"
)

// AdminGuard decides whether the caller in ctx holds the administrator identity.
type AdminGuard interface {
	RequireAdmin(ctx context.Context) error
}

const bearerPrefix = "bearer "

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// AuthenticationMiddleware authenticates requests with a Bearer token.
//
// The token is hashed and resolved through tokenUseCase.Authenticate. On
// success the client is stored in the request context (see WithClient), so
// every use case invoked by the handler sees it as the caller.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/revoked token → 401 Unauthorized
//   - Inactive client → 403 Forbidden
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, ok := bearerToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		client, err := tokenUseCase.Authenticate(c.Request.Context(), tokenService.HashToken(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClient(c.Request.Context(), client))

		logger.Debug("authentication successful",
			slog.String("client_id", client.ID.String()),
			slog.String("client_name", client.Name))

		c.Next()
	}
}

// AdminMiddleware lets the request through only when the authenticated client
// is the administrator. It must run after AuthenticationMiddleware.
//
// Error handling:
//   - No client in context → 401 Unauthorized
//   - Caller is not the administrator → 403 Forbidden
//   - Registry not initialized → 403 Forbidden
func AdminMiddleware(guard AdminGuard, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := GetClient(c.Request.Context())
		if !ok || client == nil {
			logger.Debug("admin check failed: no authenticated client in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := guard.RequireAdmin(c.Request.Context()); err != nil {
			logger.Debug("admin check failed",
				slog.String("client_id", client.ID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
