package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/datashare/http/dto"
	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
	"github.com/allisson/datashare/internal/httputil"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// AccessHandler handles grants, gated encrypted reads and access requests.
type AccessHandler struct {
	accessUseCase datashareUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler with required dependencies.
func NewAccessHandler(accessUseCase datashareUseCase.AccessUseCase, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// GrantHandler sets a permission for an identity. Admin only.
// PUT /v1/nfts/:id/grants/:identity/:permission - Returns 204 No Content.
func (h *AccessHandler) GrantHandler(c *gin.Context) {
	h.setGrant(c, h.accessUseCase.GrantAccess)
}

// RevokeHandler clears a permission for an identity. Admin only.
// DELETE /v1/nfts/:id/grants/:identity/:permission - Returns 204 No Content.
func (h *AccessHandler) RevokeHandler(c *gin.Context) {
	h.setGrant(c, h.accessUseCase.RevokeAccess)
}

func (h *AccessHandler) setGrant(
	c *gin.Context,
	op func(ctx context.Context, permission domain.Permission, system uuid.UUID, id uint32) error,
) {
	id, system, ok := h.parseTarget(c)
	if !ok {
		return
	}

	permission, err := domain.ParsePermission(c.Param("permission"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := op(c.Request.Context(), permission, system, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// GrantsHandler reports both permission flags of an identity on a token.
// GET /v1/nfts/:id/grants/:identity - Returns 200 OK.
func (h *AccessHandler) GrantsHandler(c *gin.Context) {
	id, system, ok := h.parseTarget(c)
	if !ok {
		return
	}

	grants, err := h.accessUseCase.GetAccessGrants(c.Request.Context(), system, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GrantsResponse{
		Identity: system.String(),
		Read:     grants.Read,
		Write:    grants.Write,
	})
}

// ReadSharedHandler returns a ciphertext to the authenticated caller when it
// holds a READ grant, and an empty ciphertext otherwise.
// GET /v1/nfts/:id/shared/:key - Returns 200 OK.
func (h *AccessHandler) ReadSharedHandler(c *gin.Context) {
	requester, err := callerID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	key := c.Param("key")

	value, err := h.accessUseCase.ReadEncryptedData(c.Request.Context(), id, key, requester)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptedDataResponse{Key: key, Ciphertext: value})
}

// RequestHandler files an access request for the authenticated caller.
// POST /v1/nfts/:id/requests/:permission - Returns 202 Accepted.
func (h *AccessHandler) RequestHandler(c *gin.Context) {
	requester, err := callerID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permission, err := domain.ParsePermission(c.Param("permission"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.accessUseCase.RequestAccess(c.Request.Context(), id, permission, requester); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusAccepted, "application/json", nil)
}

// ListRequestsHandler returns the pending access requests of a token. Admin only.
// GET /v1/nfts/:id/requests - Returns 200 OK.
func (h *AccessHandler) ListRequestsHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	requests, err := h.accessUseCase.ListAccessRequests(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessRequestsToResponse(requests))
}

// ResolveRequestHandler approves or denies a pending access request. Admin only.
// POST /v1/nfts/:id/requests/:permission/:identity - Returns 204 No Content.
func (h *AccessHandler) ResolveRequestHandler(c *gin.Context) {
	id, requester, ok := h.parseTarget(c)
	if !ok {
		return
	}

	permission, err := domain.ParsePermission(c.Param("permission"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.ResolveAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err = h.accessUseCase.ResolveAccessRequest(c.Request.Context(), id, permission, requester, *req.Approve)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *AccessHandler) parseTarget(c *gin.Context) (uint32, uuid.UUID, bool) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return 0, uuid.Nil, false
	}

	identity, err := httputil.ParseUUIDParam(c, "identity")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return 0, uuid.Nil, false
	}

	return id, identity, true
}
