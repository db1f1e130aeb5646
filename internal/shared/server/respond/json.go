package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse wraps payloads in the success envelope.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Data writes a JSON response with the given status and a success envelope.
func Data(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: payload})
}

// OK writes a 200 OK success response.
func OK(c *gin.Context, payload interface{}) {
	Data(c, http.StatusOK, payload)
}
