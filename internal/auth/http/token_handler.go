package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	"github.com/allisson/datashare/internal/auth/http/dto"
	authService "github.com/allisson/datashare/internal/auth/service"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/httputil"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	tokenService authService.TokenService
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		tokenService: tokenService,
		logger:       logger,
	}
}

// IssueTokenHandler issues a new authentication token for a client.
// POST /v1/auth/token - No authentication required.
// Returns 201 Created with token and expiration time.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.IssueTokenInput{
		ClientID:     uuid.MustParse(req.ClientID),
		ClientSecret: req.ClientSecret,
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueTokenResponse{
		Token:     output.PlainToken,
		ExpiresAt: output.ExpiresAt,
	})
}

// RevokeTokenHandler revokes the bearer token used to authenticate the request.
// DELETE /v1/auth/token - Requires authentication.
// Returns 204 No Content.
func (h *TokenHandler) RevokeTokenHandler(c *gin.Context) {
	plainToken, ok := bearerToken(c)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), h.tokenService.HashToken(plainToken)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
