package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serg-shkviro/eshop/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter() (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	return gin.New(), NewAuthMiddleware(testSecret)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	router, m := newTestRouter()

	token, err := util.GenerateToken(7, "user@example.com", false, testSecret, time.Hour)
	require.NoError(t, err)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(7), userID)
		assert.False(t, IsAdmin(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router, m := newTestRouter()

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router, m := newTestRouter()

	token, err := util.GenerateToken(7, "user@example.com", false, testSecret, -time.Minute)
	require.NoError(t, err)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestRequireAdmin_DeniesRegularUser(t *testing.T) {
	router, m := newTestRouter()

	token, err := util.GenerateToken(7, "user@example.com", false, testSecret, time.Hour)
	require.NoError(t, err)

	router.GET("/admin", m.Authenticate(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTHZ_ADMIN_ONLY")
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	router, m := newTestRouter()

	token, err := util.GenerateToken(1, "admin@example.com", true, testSecret, time.Hour)
	require.NoError(t, err)

	router.GET("/admin", m.Authenticate(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticate_GuestOnBadToken(t *testing.T) {
	router, m := newTestRouter()

	router.GET("/open", m.OptionalAuthenticate(), func(c *gin.Context) {
		_, ok := GetUserID(c)
		assert.False(t, ok)
		assert.False(t, IsAdmin(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticate_SetsIdentity(t *testing.T) {
	router, m := newTestRouter()

	token, err := util.GenerateToken(9, "admin@example.com", true, testSecret, time.Hour)
	require.NoError(t, err)

	router.GET("/open", m.OptionalAuthenticate(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(9), userID)
		assert.True(t, IsAdmin(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
