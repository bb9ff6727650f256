package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/tradeops/backend/internal/application/identity"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// AuthHandler handles authentication and principal management
type AuthHandler struct {
	BaseHandler
	service *identityapp.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *identityapp.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates a principal and issues a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tokens, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Register creates a new principal at the restricted tier
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Me returns the authenticated principal
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := h.principalID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Check reports whether the authenticated principal may perform an operation
// GET /api/v1/auth/check?operation=quotation.create
func (h *AuthHandler) Check(c *gin.Context) {
	id, ok := h.principalID(c)
	if !ok {
		return
	}
	operation := c.Query("operation")
	if operation == "" {
		h.BadRequest(c, "Missing operation parameter")
		return
	}
	resp, err := h.service.Check(c.Request.Context(), id, operation)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignTier changes a principal's tier. Master tier only.
// PUT /api/v1/principals/:id/tier
func (h *AuthHandler) AssignTier(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req identityapp.AssignTierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.AssignedBy = actor
	resp, err := h.service.AssignTier(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns principals
// GET /api/v1/principals
func (h *AuthHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if !h.bindQuery(c, &listReq) {
		return
	}
	filter := listReq.ToFilter()
	if tier := c.Query("tier"); tier != "" {
		filter.Filters["tier"] = tier
	}
	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one principal
// GET /api/v1/principals/:id
func (h *AuthHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate disables a principal. Master tier only.
// DELETE /api/v1/principals/:id
func (h *AuthHandler) Deactivate(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id, actor); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
