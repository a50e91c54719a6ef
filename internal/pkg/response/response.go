package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes the payload as-is with a 200. Success bodies carry no envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error writes the flat error body shared by every endpoint.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
