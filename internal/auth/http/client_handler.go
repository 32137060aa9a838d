package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	"github.com/allisson/datashare/internal/auth/http/dto"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	"github.com/allisson/datashare/internal/httputil"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// ClientHandler handles HTTP requests for client management operations.
// Every route is mounted behind AdminMiddleware.
type ClientHandler struct {
	clientUseCase authUseCase.ClientUseCase
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler with required dependencies.
func NewClientHandler(clientUseCase authUseCase.ClientUseCase, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		clientUseCase: clientUseCase,
		logger:        logger,
	}
}

// CreateHandler registers a new client (a system in registry terms).
// POST /v1/clients - Returns 201 Created with ID and plain text secret.
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateClientRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.CreateClientInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	}

	output, err := h.clientUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateClientResponse{
		ID:     output.ID.String(),
		Secret: output.PlainSecret,
	})
}

// GetHandler retrieves a client by ID.
// GET /v1/clients/:id - Returns 200 OK with client data (no secret).
func (h *ClientHandler) GetHandler(c *gin.Context) {
	clientID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.Get(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// DeleteHandler deactivates a client.
// DELETE /v1/clients/:id - Returns 204 No Content.
func (h *ClientHandler) DeleteHandler(c *gin.Context) {
	h.mutate(c, h.clientUseCase.Delete)
}

// UnlockHandler clears a client's lockout.
// POST /v1/clients/:id/unlock - Returns 204 No Content.
func (h *ClientHandler) UnlockHandler(c *gin.Context) {
	h.mutate(c, h.clientUseCase.Unlock)
}

func (h *ClientHandler) mutate(c *gin.Context, op func(ctx context.Context, clientID uuid.UUID) error) {
	clientID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := op(c.Request.Context(), clientID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
