package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthTestRouter(issuer *util.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", BearerAuth(issuer), func(c *gin.Context) {
		email, _ := GetEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	return r
}

func TestBearerAuthMissingHeader(t *testing.T) {
	r := newAuthTestRouter(util.NewTokenIssuer("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Missing token"}`, w.Body.String())
}

func TestBearerAuthMalformedHeader(t *testing.T) {
	r := newAuthTestRouter(util.NewTokenIssuer("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Missing token"}`, w.Body.String())
}

func TestBearerAuthInvalidToken(t *testing.T) {
	r := newAuthTestRouter(util.NewTokenIssuer("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
}

func TestBearerAuthValidToken(t *testing.T) {
	issuer := util.NewTokenIssuer("test-secret")
	r := newAuthTestRouter(issuer)

	token, err := issuer.Issue("user@example.com")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"user@example.com"}`, w.Body.String())
}
