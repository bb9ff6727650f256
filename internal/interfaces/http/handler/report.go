package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/tradeops/backend/internal/application/report"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// ReportHandler handles weekly reports and their access grants
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create creates a draft weekly report
// POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	author, ok := h.principalID(c)
	if !ok {
		return
	}
	var req reportapp.CreateReportRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Author = author
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update edits a report's content
// PUT /api/v1/reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	editor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req reportapp.UpdateReportRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Editor = editor
	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit submits a report for approval
// POST /api/v1/reports/:id/submit
func (h *ReportHandler) Submit(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Submit(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve approves a submitted report. Requires an APPROVE grant.
// POST /api/v1/reports/:id/approve
func (h *ReportHandler) Approve(c *gin.Context) {
	approver, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Approve(c.Request.Context(), id, approver)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject sends a submitted report back with a reason
// POST /api/v1/reports/:id/reject
func (h *ReportHandler) Reject(c *gin.Context) {
	approver, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req reportapp.RejectReportRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Approver = approver
	resp, err := h.service.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Grant gives a principal access to a report
// POST /api/v1/reports/:id/grants
func (h *ReportHandler) Grant(c *gin.Context) {
	grantor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req reportapp.GrantAccessRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Grantor = grantor
	resp, err := h.service.Grant(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Revoke removes a principal's access to a report
// DELETE /api/v1/reports/:id/grants
func (h *ReportHandler) Revoke(c *gin.Context) {
	grantor, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req reportapp.RevokeAccessRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Grantor = grantor
	resp, err := h.service.Revoke(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one report if the caller may see it
// GET /api/v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	caller, ok := h.principalID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the reports visible to the caller
// GET /api/v1/reports
func (h *ReportHandler) List(c *gin.Context) {
	caller, ok := h.principalID(c)
	if !ok {
		return
	}
	var listReq dto.ListRequest
	if !h.bindQuery(c, &listReq) {
		return
	}
	resp, err := h.service.List(c.Request.Context(), caller, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
