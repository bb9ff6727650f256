package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/infrastructure/auth"
	"github.com/tradeops/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-0123456789abcdef",
		RefreshSecret:          "test-refresh-secret-0123456789abcd",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "tradeops-test",
		MaxRefreshCount:        10,
	})
}

func authedEngine(jwtService *auth.JWTService, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(JWTAuth(jwtService))
	r.GET("/api/v1/ping", append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})...)
	return r
}

func issueToken(t *testing.T, jwtService *auth.JWTService, tier string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		PrincipalID: uuid.New(),
		Username:    "hjkim",
		Tier:        tier,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := authedEngine(newTestJWTService())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := authedEngine(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidTokenPopulatesContext(t *testing.T) {
	jwtService := newTestJWTService()
	var gotTier string
	var gotID bool
	r := authedEngine(jwtService, func(c *gin.Context) {
		gotTier = GetTier(c)
		_, gotID = GetPrincipalID(c)
		c.Next()
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, "NORMAL"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "NORMAL", gotTier)
	assert.True(t, gotID)
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(newTestJWTService()))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOperation(t *testing.T) {
	jwtService := newTestJWTService()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(JWTAuth(jwtService))
	r.GET("/api/v1/workflows", RequireOperation("workflow.view"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// NORMAL lacks workflow.view; ADVANCED has it.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, "NORMAL"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, jwtService, "ADVANCED"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
