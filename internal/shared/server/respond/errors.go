package respond

import (
	"github.com/gin-gonic/gin"

	"cvlens-backend/internal/shared/telemetry"
)

// ErrorResponse is the standardized failure envelope. Message is always safe
// to show to a caller; Detail carries diagnostics and may be omitted.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, detail interface{}) {
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
		Success: false,
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}
