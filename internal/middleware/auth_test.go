package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"SocialConnect/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performAuth(header string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, performAuth("").Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, performAuth("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, performAuth("Bearer").Code)
}

func TestAuthGarbageToken(t *testing.T) {
	// 签名校验失败，不会走到会话检查
	assert.Equal(t, http.StatusUnauthorized, performAuth("Bearer not-a-jwt").Code)
}

func performAdmin(user *model.User) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		if user != nil {
			c.Set(ContextUserKey, user)
		}
	}, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	return w
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, performAdmin(nil).Code)
	assert.Equal(t, http.StatusForbidden, performAdmin(&model.User{Role: model.RoleUser}).Code)
	assert.Equal(t, http.StatusOK, performAdmin(&model.User{Role: model.RoleAdmin}).Code)
}
