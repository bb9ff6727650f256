package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/infrastructure/auth"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey      = "jwt_claims"
	JWTPrincipalIDKey = "jwt_principal_id"
	JWTUsernameKey    = "jwt_username"
	JWTTierKey        = "jwt_tier"
	AuthHeaderKey     = "Authorization"
	BearerPrefix      = "Bearer "
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
}

// DefaultJWTConfig returns the default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTConfig {
	return JWTConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuth creates JWT authentication middleware with default configuration
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthWithConfig creates JWT authentication middleware
func JWTAuthWithConfig(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTPrincipalIDKey, claims.PrincipalID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTTierKey, claims.Tier)
		c.Next()
	}
}

// GetJWTClaims returns the validated claims, or nil outside an authenticated
// request.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetPrincipalID returns the authenticated principal's UUID
func GetPrincipalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(JWTPrincipalIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetTier returns the authenticated principal's tier string
func GetTier(c *gin.Context) string {
	return c.GetString(JWTTierKey)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(code, message, GetRequestID(c)))
}
