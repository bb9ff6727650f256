package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/tradeops/backend/internal/application/partner"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// PartnerHandler handles customer and supplier management
type PartnerHandler struct {
	BaseHandler
	service *partnerapp.Service
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(service *partnerapp.Service) *PartnerHandler {
	return &PartnerHandler{service: service}
}

// CreateCustomer creates a customer
// POST /api/v1/customers
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateCustomer updates a customer's master data
// PUT /api/v1/customers/:id
func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetCustomerContact updates a customer's contact details
// PUT /api/v1/customers/:id/contact
func (h *PartnerHandler) SetCustomerContact(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req partnerapp.SetContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.SetCustomerContact(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetCustomer returns one customer
// GET /api/v1/customers/:id
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListCustomers returns customers
// GET /api/v1/customers
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	filter, ok := h.partnerFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeactivateCustomer marks a customer inactive
// DELETE /api/v1/customers/:id
func (h *PartnerHandler) DeactivateCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSupplier creates a supplier
// POST /api/v1/suppliers
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req partnerapp.CreatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateSupplier updates a supplier's master data
// PUT /api/v1/suppliers/:id
func (h *PartnerHandler) UpdateSupplier(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.service.UpdateSupplier(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetSupplier returns one supplier
// GET /api/v1/suppliers/:id
func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListSuppliers returns suppliers
// GET /api/v1/suppliers
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	filter, ok := h.partnerFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListSuppliers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeactivateSupplier marks a supplier inactive
// DELETE /api/v1/suppliers/:id
func (h *PartnerHandler) DeactivateSupplier(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateSupplier(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *PartnerHandler) partnerFilter(c *gin.Context) (shared.Filter, bool) {
	var listReq dto.ListRequest
	if !h.bindQuery(c, &listReq) {
		return shared.Filter{}, false
	}
	filter := listReq.ToFilter()
	if country := c.Query("country"); country != "" {
		filter.Filters["country"] = country
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	return filter, true
}
