package handler

import (
	"github.com/gin-gonic/gin"
	quotationapp "github.com/tradeops/backend/internal/application/quotation"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// QuotationHandler handles quotation lifecycle operations
type QuotationHandler struct {
	BaseHandler
	service *quotationapp.Service
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(service *quotationapp.Service) *QuotationHandler {
	return &QuotationHandler{service: service}
}

// Create creates a draft quotation
// POST /api/v1/quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	var req quotationapp.CreateQuotationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AddItem adds a line item to a draft quotation
// POST /api/v1/quotations/:id/items
func (h *QuotationHandler) AddItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req quotationapp.LineItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a line item from a draft quotation
// DELETE /api/v1/quotations/:id/items/:itemId
func (h *QuotationHandler) RemoveItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit moves a draft quotation to submitted
// POST /api/v1/quotations/:id/submit
func (h *QuotationHandler) Submit(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve approves a submitted quotation, freezing the FX snapshot
// POST /api/v1/quotations/:id/approve
func (h *QuotationHandler) Approve(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject rejects a submitted quotation with a reason
// POST /api/v1/quotations/:id/reject
func (h *QuotationHandler) Reject(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req quotationapp.RejectQuotationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one quotation
// GET /api/v1/quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
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

// List returns quotations, optionally filtered by status
// GET /api/v1/quotations?status=SUBMITTED
func (h *QuotationHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if !h.bindQuery(c, &listReq) {
		return
	}
	resp, err := h.service.List(c.Request.Context(), c.Query("status"), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a draft quotation
// DELETE /api/v1/quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
