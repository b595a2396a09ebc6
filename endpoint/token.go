package endpoint

import (
	"net/http"
	"strings"

	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
)

// ValidateToken godoc
// @Summary      Validate bearer token
// @Description  Check whether the presented token is validly signed and not expired
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string "Valid token"
// @Failure      401 {object} map[string]string "Missing, invalid or expired token"
// @Router       /token/validate [get]
func ValidateToken(issuer *util.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			util.RespondError(c, http.StatusUnauthorized, "Missing token")
			return
		}

		email, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			util.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "valid", "email": email})
	}
}
