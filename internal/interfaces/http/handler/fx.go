package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	fxapp "github.com/tradeops/backend/internal/application/fx"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// FXHandler handles reference rate management and lookups
type FXHandler struct {
	BaseHandler
	service *fxapp.Service
}

// NewFXHandler creates a new FXHandler
func NewFXHandler(service *fxapp.Service) *FXHandler {
	return &FXHandler{service: service}
}

// PutQuarterly records or overwrites a quarterly reference rate
// PUT /api/v1/fx/quarterly
func (h *FXHandler) PutQuarterly(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	var req fxapp.PutQuarterlyRateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.RecordedBy = actor
	resp, err := h.service.PutQuarterly(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PutYearly records or overwrites a yearly reference rate
// PUT /api/v1/fx/yearly
func (h *FXHandler) PutYearly(c *gin.Context) {
	actor, ok := h.principalID(c)
	if !ok {
		return
	}
	var req fxapp.PutYearlyRateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.RecordedBy = actor
	resp, err := h.service.PutYearly(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Lookup resolves the effective rate for a target currency on a date.
// Quarterly entries win over yearly ones.
// GET /api/v1/fx/lookup?target=KRW&date=2025-04-16
func (h *FXHandler) Lookup(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		h.BadRequest(c, "Missing target parameter")
		return
	}
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date parameter, want YYYY-MM-DD")
			return
		}
		date = parsed
	}
	resp, err := h.service.GetFor(c.Request.Context(), date, valueobject.Currency(target))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History returns all recorded buckets for a target currency
// GET /api/v1/fx/history/:target
func (h *FXHandler) History(c *gin.Context) {
	resp, err := h.service.History(c.Request.Context(), valueobject.Currency(c.Param("target")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Stats returns aggregate statistics over a target's recorded rates
// GET /api/v1/fx/stats/:target
func (h *FXHandler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context(), valueobject.Currency(c.Param("target")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
