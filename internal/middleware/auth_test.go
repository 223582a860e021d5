package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolrecords/internal/domain"

	jwtsvc "schoolrecords/internal/pkg/jwt"
)

func setupAuthRouter(jwt *jwtsvc.Service, roles ...domain.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(Auth(jwt))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id"), "role": c.GetString("role")})
	})
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthMissingHeader(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	router := setupAuthRouter(jwt)

	resp := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	router := setupAuthRouter(jwt)

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer garbage").Code)
}

func TestAuthExpiredToken(t *testing.T) {
	expired := jwtsvc.New("test-secret", -time.Second, time.Hour)
	token, err := expired.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	router := setupAuthRouter(jwtsvc.New("test-secret", time.Minute, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer "+token).Code)
}

func TestAuthRefreshTokenRejectedOnAccessPath(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	refresh, _, err := jwt.GenerateRefreshToken(1)
	require.NoError(t, err)

	router := setupAuthRouter(jwt)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer "+refresh).Code)
}

func TestAuthValidToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	token, err := jwt.GenerateAccessToken(42, "student")
	require.NoError(t, err)

	router := setupAuthRouter(jwt)
	resp := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"user_id":42`)
	assert.Contains(t, resp.Body.String(), `"role":"student"`)
}

func TestRequireRoleForbidden(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	token, err := jwt.GenerateAccessToken(42, "student")
	require.NoError(t, err)

	router := setupAuthRouter(jwt, domain.RoleAdmin, domain.RoleTeacher)
	assert.Equal(t, http.StatusForbidden, doGet(router, "Bearer "+token).Code)
}

func TestRequireRoleAllowed(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Minute, time.Hour)
	token, err := jwt.GenerateAccessToken(42, "teacher")
	require.NoError(t, err)

	router := setupAuthRouter(jwt, domain.RoleAdmin, domain.RoleTeacher)
	assert.Equal(t, http.StatusOK, doGet(router, "Bearer "+token).Code)
}
