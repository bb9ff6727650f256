package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// RequireOperation creates middleware that checks the authenticated tier
// against the capability matrix. The denial message is deliberately generic.
func RequireOperation(operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier, ok := identity.ParseTier(GetTier(c))
		if !ok || !tier.Allows(operation) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireTier creates middleware that requires the given tier or above
func RequireTier(min identity.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier, ok := identity.ParseTier(GetTier(c))
		if !ok || !tier.AtLeast(min) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.ErrCodeForbidden, "Operation not permitted", GetRequestID(c)))
}
