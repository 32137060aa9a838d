package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/datashare/internal/datashare/http/dto"
	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
	"github.com/allisson/datashare/internal/httputil"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// RegistryHandler handles token registration and lookup.
type RegistryHandler struct {
	registryUseCase datashareUseCase.RegistryUseCase
	logger          *slog.Logger
}

// NewRegistryHandler creates a new registry handler with required dependencies.
func NewRegistryHandler(registryUseCase datashareUseCase.RegistryUseCase, logger *slog.Logger) *RegistryHandler {
	return &RegistryHandler{
		registryUseCase: registryUseCase,
		logger:          logger,
	}
}

// CreateHandler registers a new token.
// POST /v1/nfts - Returns 201 Created with the assigned id.
func (h *RegistryHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := h.registryUseCase.CreateToken(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTokenResponse{ID: id})
}

// GetHandler returns a token record.
// GET /v1/nfts/:id - Returns 200 OK, with empty fields for unassigned ids.
func (h *RegistryHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, err := h.registryUseCase.GetTokenInfo(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToResponse(token))
}

// TotalHandler returns the number of registered tokens.
// GET /v1/nfts - Returns 200 OK.
func (h *RegistryHandler) TotalHandler(c *gin.Context) {
	total, err := h.registryUseCase.GetTotalTokens(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TotalTokensResponse{TotalTokens: total})
}
