package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/datashare/internal/datashare/domain"
	"github.com/allisson/datashare/internal/datashare/http/dto"
	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
	"github.com/allisson/datashare/internal/httputil"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// DataHandler handles the public and encrypted data tiers.
type DataHandler struct {
	dataUseCase datashareUseCase.DataUseCase
	logger      *slog.Logger
}

// NewDataHandler creates a new data handler with required dependencies.
func NewDataHandler(dataUseCase datashareUseCase.DataUseCase, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		dataUseCase: dataUseCase,
		logger:      logger,
	}
}

// ReadPublicHandler returns one public value and counts the read.
// GET /v1/nfts/:id/public/:key - Returns 200 OK; the value is "No data found"
// when the key is absent.
func (h *DataHandler) ReadPublicHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	key := c.Param("key")

	value, err := h.dataUseCase.ReadPublicData(c.Request.Context(), id, key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicDataResponse{Key: key, Value: value})
}

// ListPublicHandler returns every public value of a token.
// GET /v1/nfts/:id/public - Returns 200 OK.
func (h *DataHandler) ListPublicHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	data, err := h.dataUseCase.GetAllPublicData(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicDataMapResponse{Data: data})
}

// GetEncryptedHandler returns one ciphertext to any caller and counts the read.
// GET /v1/nfts/:id/encrypted/:key - Returns 200 OK.
func (h *DataHandler) GetEncryptedHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	key := c.Param("key")

	value, err := h.dataUseCase.GetEncryptedData(c.Request.Context(), id, key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptedDataResponse{Key: key, Ciphertext: value})
}

// TiersHandler reports which data tiers exist for a token.
// GET /v1/nfts/:id/tiers - Returns 200 OK.
func (h *DataHandler) TiersHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	ctx := c.Request.Context()
	tiers := &domain.DataTiers{}
	if tiers.HasPublicData, err = h.dataUseCase.HasPublicData(ctx, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if tiers.HasEncryptedData, err = h.dataUseCase.HasEncryptedData(ctx, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTiersToResponse(tiers))
}

// AddPublicHandler upserts a public value. Admin only.
// PUT /v1/nfts/:id/public/:key - Returns 204 No Content.
func (h *DataHandler) AddPublicHandler(c *gin.Context) {
	id, key, req, ok := h.bindPublic(c)
	if !ok {
		return
	}

	if err := h.dataUseCase.AddPublicData(c.Request.Context(), id, key, req.Value); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AddEncryptedHandler upserts a ciphertext. Admin only.
// PUT /v1/nfts/:id/encrypted/:key - Returns 204 No Content.
func (h *DataHandler) AddEncryptedHandler(c *gin.Context) {
	id, key, ciphertext, ok := h.bindEncrypted(c)
	if !ok {
		return
	}

	if err := h.dataUseCase.AddEncryptedData(c.Request.Context(), id, key, ciphertext); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// WritePublicHandler upserts a public value as the authenticated WRITE grant
// holder.
// PUT /v1/nfts/:id/shared/public/:key - Returns 204 No Content.
func (h *DataHandler) WritePublicHandler(c *gin.Context) {
	writer, err := callerID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, key, req, ok := h.bindPublic(c)
	if !ok {
		return
	}

	if err := h.dataUseCase.WritePublicData(c.Request.Context(), id, key, req.Value, writer); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// WriteEncryptedHandler upserts a ciphertext as the authenticated WRITE grant
// holder.
// PUT /v1/nfts/:id/shared/encrypted/:key - Returns 204 No Content.
func (h *DataHandler) WriteEncryptedHandler(c *gin.Context) {
	writer, err := callerID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, key, ciphertext, ok := h.bindEncrypted(c)
	if !ok {
		return
	}

	if err := h.dataUseCase.WriteEncryptedData(c.Request.Context(), id, key, ciphertext, writer); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *DataHandler) bindPublic(c *gin.Context) (uint32, string, *dto.PutPublicDataRequest, bool) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return 0, "", nil, false
	}

	var req dto.PutPublicDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return 0, "", nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return 0, "", nil, false
	}

	return id, c.Param("key"), &req, true
}

func (h *DataHandler) bindEncrypted(c *gin.Context) (uint32, string, []byte, bool) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return 0, "", nil, false
	}

	var req dto.PutEncryptedDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return 0, "", nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return 0, "", nil, false
	}

	ciphertext, err := req.Decode()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return 0, "", nil, false
	}

	return id, c.Param("key"), ciphertext, true
}
