// Package httputil holds the gin helpers shared by every handler: error
// rendering and path and query parameter parsing.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// errorMapping renders one domain sentinel. An empty message means the
// error's own text is shown to the client.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; the first sentinel in the chain wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", ""},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{
		apperrors.ErrLocked, http.StatusLocked, "client_locked",
		"Client is locked due to too many failed authentication attempts",
	},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to perform this operation"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON
// error body. Unknown errors become 500 without exposing details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	response := ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			status = m.status
			response = ErrorResponse{Error: m.code, Message: m.message}
			if m.message == "" {
				response.Message = err.Error()
			}
			break
		}
	}

	writeError(c, status, response, err, logger)
}

// HandleBadRequestGin writes 400 for malformed bodies or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeError(c, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()}, err, logger)
}

// HandleValidationErrorGin writes 422 for requests that fail validation rules.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeError(
		c,
		http.StatusUnprocessableEntity,
		ErrorResponse{Error: "validation_error", Message: err.Error()},
		err,
		logger,
	)
}

func writeError(c *gin.Context, status int, response ErrorResponse, err error, logger *slog.Logger) {
	if c.Request != nil {
		response.RequestID = requestid.Get(c)
	}

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c, level, "request failed",
			slog.Int("status_code", status),
			slog.String("error_code", response.Error),
			slog.String("request_id", response.RequestID),
			slog.Any("error", err),
		)
	}

	c.JSON(status, response)
}
