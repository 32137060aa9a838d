package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/datashare/internal/datashare/http/dto"
	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
	"github.com/allisson/datashare/internal/httputil"
)

// AnalyticsHandler exposes read counters and integrity checks.
type AnalyticsHandler struct {
	analyticsUseCase datashareUseCase.AnalyticsUseCase
	logger           *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler with required dependencies.
func NewAnalyticsHandler(analyticsUseCase datashareUseCase.AnalyticsUseCase, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUseCase: analyticsUseCase,
		logger:           logger,
	}
}

// AccessStatsHandler returns the read counter bundle of a token.
// GET /v1/nfts/:id/stats - Returns 200 OK.
func (h *AnalyticsHandler) AccessStatsHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	stats, err := h.analyticsUseCase.GetAccessStats(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AccessStatsResponse{
		TotalAccesses: stats.TotalAccesses,
		NFTID:         stats.NFTID,
	})
}

// CountHandler returns the read counter of a token.
// GET /v1/nfts/:id/stats/count - Returns 200 OK.
func (h *AnalyticsHandler) CountHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	count, err := h.analyticsUseCase.GetDataSharingCount(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DataSharingCountResponse{Count: count})
}

// IntegrityHandler runs the existence checks of a token.
// GET /v1/nfts/:id/integrity - Returns 200 OK.
func (h *AnalyticsHandler) IntegrityHandler(c *gin.Context) {
	id, err := httputil.ParseUint32Param(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	report, err := h.analyticsUseCase.VerifyDataIntegrity(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIntegrityToResponse(report))
}

// SystemStatsHandler returns registry-wide figures.
// GET /v1/stats - Returns 200 OK.
func (h *AnalyticsHandler) SystemStatsHandler(c *gin.Context) {
	stats, err := h.analyticsUseCase.GetSystemStats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SystemStatsResponse{
		TotalNFTs:     stats.TotalNFTs,
		TotalAccesses: stats.TotalAccesses,
	})
}

// TotalAccessesHandler returns the summed read counters.
// GET /v1/stats/accesses - Returns 200 OK.
func (h *AnalyticsHandler) TotalAccessesHandler(c *gin.Context) {
	total, err := h.analyticsUseCase.GetTotalAccesses(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TotalAccessesResponse{TotalAccesses: total})
}
