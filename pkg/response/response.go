package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the only error shape clients see.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes data as the response body. Entities are returned bare, with
// no envelope.
func JSON(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Message writes {"message": msg} with status and keeps the chain running.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Message: msg})
}

// Error writes {"message": msg} and aborts the handler chain.
func Error(c *gin.Context, status int, msg string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{Message: msg})
}
