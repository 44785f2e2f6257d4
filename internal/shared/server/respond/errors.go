package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response and aborts the request.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// EntityError maps entity store errors onto the response taxonomy. Anything
// that is neither NotFound nor Conflict is reported as an opaque internal
// error; the detail stays in the server log.
func EntityError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		Error(c, http.StatusNotFound, "not_found", resource+" not found", nil)
	case errors.Is(err, entity.ErrConflict):
		Error(c, http.StatusConflict, "conflict", resource+" already exists", nil)
	default:
		telemetry.Error("store.failure", map[string]any{
			"resource":   resource,
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
	}
}
