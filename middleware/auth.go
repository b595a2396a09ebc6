package middleware

import (
	"net/http"
	"strings"

	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
)

const emailContextKey = "auth_email"

// BearerAuth gates protected operations behind a signed bearer token. A
// missing or malformed Authorization header aborts with 401 "Missing token";
// a bad signature or expired token aborts with 401 "Invalid or expired
// token". On success the authenticated email is stored in the request
// context for downstream handlers.
func BearerAuth(issuer *util.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			util.RespondError(c, http.StatusUnauthorized, "Missing token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		email, err := issuer.Verify(tokenString)
		if err != nil {
			util.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(emailContextKey, email)
		c.Next()
	}
}

// GetEmail returns the authenticated email set by BearerAuth, if any.
func GetEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(emailContextKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
