package fx

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/fx"
)

// PutQuarterlyRateRequest records or revises one quarterly bucket
type PutQuarterlyRateRequest struct {
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Quarter    int             `json:"quarter" binding:"required,min=1,max=4"`
	Target     string          `json:"target" binding:"required,oneof=KRW CNY VND THB IDR"`
	Rate       decimal.Decimal `json:"rate" binding:"required"`
	SourceTag  string          `json:"source_tag" binding:"max=100"`
	RecordedBy uuid.UUID       `json:"-"`
}

// PutYearlyRateRequest records or revises one yearly bucket
type PutYearlyRateRequest struct {
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Target     string          `json:"target" binding:"required,oneof=KRW CNY VND THB IDR"`
	Rate       decimal.Decimal `json:"rate" binding:"required"`
	SourceTag  string          `json:"source_tag" binding:"max=100"`
	RecordedBy uuid.UUID       `json:"-"`
}

// RateResponse represents one reference rate in API responses
type RateResponse struct {
	ID         uuid.UUID       `json:"id"`
	Period     string          `json:"period"`
	Scope      string          `json:"scope"`
	Target     string          `json:"target"`
	Rate       decimal.Decimal `json:"rate"`
	SourceTag  string          `json:"source_tag"`
	RecordedBy uuid.UUID       `json:"recorded_by"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// LookupResponse is the result of a dated rate lookup
type LookupResponse struct {
	Target string          `json:"target"`
	Date   string          `json:"date"`
	Period string          `json:"period"`
	Scope  string          `json:"scope"`
	Rate   decimal.Decimal `json:"rate"`
}

// ToRateResponse converts a domain rate to its API shape
func ToRateResponse(r *fx.ReferenceRate) RateResponse {
	return RateResponse{
		ID:         r.ID,
		Period:     r.Period.String(),
		Scope:      string(r.Period.Scope()),
		Target:     string(r.Target),
		Rate:       r.Rate,
		SourceTag:  r.SourceTag,
		RecordedBy: r.RecordedBy,
		RecordedAt: r.RecordedAt,
	}
}

// ToRateResponses converts a slice of domain rates
func ToRateResponses(rates []fx.ReferenceRate) []RateResponse {
	out := make([]RateResponse, len(rates))
	for i := range rates {
		out[i] = ToRateResponse(&rates[i])
	}
	return out
}
