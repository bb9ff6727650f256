package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradeops/backend/internal/application/navigation"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/infrastructure/i18n"
	"github.com/tradeops/backend/internal/interfaces/http/middleware"
)

// MenuHandler serves the tier-filtered navigation menu and the UI label
// catalog.
type MenuHandler struct {
	BaseHandler
	translator *i18n.Translator
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(translator *i18n.Translator) *MenuHandler {
	return &MenuHandler{translator: translator}
}

// Menu returns the navigation sections visible to the authenticated tier
// GET /api/v1/menu
func (h *MenuHandler) Menu(c *gin.Context) {
	tier, ok := identity.ParseTier(middleware.GetTier(c))
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, navigation.For(tier))
}

// Labels returns the UI label catalog in the caller's language
// GET /api/v1/labels
func (h *MenuHandler) Labels(c *gin.Context) {
	tag := h.translator.Match(c.GetHeader("Accept-Language"))
	h.Success(c, h.translator.Labels(tag))
}
