// Package http provides the gin handlers for the data registry API.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authService "github.com/allisson/datashare/internal/auth/service"
	apperrors "github.com/allisson/datashare/internal/errors"
)

// callerID returns the authenticated identity attached by the authentication
// middleware.
func callerID(c *gin.Context) (uuid.UUID, error) {
	caller, ok := authService.CallerFromContext(c.Request.Context())
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return caller, nil
}
