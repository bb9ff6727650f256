package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	expenseapp "github.com/tradeops/backend/internal/application/expense"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// ExpenseHandler handles expense requests and their approval decisions
type ExpenseHandler struct {
	BaseHandler
	service *expenseapp.Service
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *expenseapp.Service) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create raises an expense request with a sealed approval chain
// POST /api/v1/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	requester, ok := h.principalID(c)
	if !ok {
		return
	}
	var req expenseapp.CreateRequestRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Requester = requester
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one expense request
// GET /api/v1/expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
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

// Mine returns the authenticated principal's own requests
// GET /api/v1/expenses/mine
func (h *ExpenseHandler) Mine(c *gin.Context) {
	requester, ok := h.principalID(c)
	if !ok {
		return
	}
	var listReq dto.ListRequest
	if !h.bindQuery(c, &listReq) {
		return
	}
	resp, err := h.service.MyRequests(c.Request.Context(), requester, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pending returns requests waiting on the authenticated principal's decision
// GET /api/v1/expenses/pending
func (h *ExpenseHandler) Pending(c *gin.Context) {
	approver, ok := h.principalID(c)
	if !ok {
		return
	}
	resp, err := h.service.PendingForMe(c.Request.Context(), approver)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve records an approval on one slot
// POST /api/v1/expenses/slots/:slotId/approve
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// Reject records a rejection on one slot
// POST /api/v1/expenses/slots/:slotId/reject
func (h *ExpenseHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

// Skip marks an optional slot as skipped
// POST /api/v1/expenses/slots/:slotId/skip
func (h *ExpenseHandler) Skip(c *gin.Context) {
	h.decide(c, h.service.Skip)
}

// Complete marks an approved request as paid out
// POST /api/v1/expenses/:id/complete
func (h *ExpenseHandler) Complete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type decideFunc func(ctx context.Context, slotID uuid.UUID, req expenseapp.DecideRequest) (*expenseapp.RequestResponse, error)

func (h *ExpenseHandler) decide(c *gin.Context, op decideFunc) {
	caller, ok := h.principalID(c)
	if !ok {
		return
	}
	slotID, ok := h.pathUUID(c, "slotId")
	if !ok {
		return
	}
	var req expenseapp.DecideRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Caller = caller
	resp, err := op(c.Request.Context(), slotID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
