package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/utils"
)

const testSecret = "test-secret"

func setupProtectedRouter(role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(testSecret), RequireRole(role), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "user_id": userID})
	})
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	user := &models.User{ID: 42, Role: models.RolePM}
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	w := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	for _, header := range []string{"Bearer", "Bearer ", "Token abc", "abc"} {
		w := doGet(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	w := doGet(router, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	user := &models.User{ID: 42, Role: models.RolePM}
	token, err := utils.GenerateToken(user, testSecret, -time.Hour)
	require.NoError(t, err)

	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	user := &models.User{ID: 42, Role: models.RolePM}
	token, err := utils.GenerateToken(user, "other-secret", time.Hour)
	require.NoError(t, err)

	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	router := setupProtectedRouter(models.RolePM)

	user := &models.User{ID: 42, Role: models.RoleTranslator}
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_MatchIsExact(t *testing.T) {
	router := setupProtectedRouter(models.RoleTranslator)

	// A PM gets no implicit access to translator-only routes
	user := &models.User{ID: 42, Role: models.RolePM}
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
