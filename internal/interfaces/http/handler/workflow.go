package handler

import (
	"github.com/gin-gonic/gin"
	workflowapp "github.com/tradeops/backend/internal/application/workflow"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// WorkflowHandler handles order workflow operations
type WorkflowHandler struct {
	BaseHandler
	service *workflowapp.Service
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(service *workflowapp.Service) *WorkflowHandler {
	return &WorkflowHandler{service: service}
}

// Seed creates a workflow from an approved quotation
// POST /api/v1/workflows
func (h *WorkflowHandler) Seed(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	var req workflowapp.SeedWorkflowRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actor
	resp, err := h.service.Seed(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Advance moves a workflow to the next stage
// POST /api/v1/workflows/:id/advance
func (h *WorkflowHandler) Advance(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Advance(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an active workflow with a reason
// POST /api/v1/workflows/:id/cancel
func (h *WorkflowHandler) Cancel(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req workflowapp.CancelWorkflowRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actor
	resp, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one workflow with its stage history
// GET /api/v1/workflows/:id
func (h *WorkflowHandler) Get(c *gin.Context) {
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

// List returns workflows
// GET /api/v1/workflows?status=ACTIVE&stage=DELIVERED
func (h *WorkflowHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if !h.bindQuery(c, &listReq) {
		return
	}
	filter := listReq.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if stage := c.Query("stage"); stage != "" {
		filter.Filters["stage"] = stage
	}
	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Stats returns workflow counts by status
// GET /api/v1/workflows/stats
func (h *WorkflowHandler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
