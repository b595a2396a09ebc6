package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes a machine-readable error response. Error payloads carry
// no retry guidance; all failures surfaced this way are request-scoped.
func RespondError(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{"error": code})
}

// RespondStatus writes a success acknowledgment of the form {"status": ...}.
func RespondStatus(c *gin.Context, status string) {
	c.JSON(http.StatusOK, gin.H{"status": status})
}
