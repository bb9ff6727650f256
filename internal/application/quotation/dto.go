package quotation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/quotation"
)

// CreateQuotationRequest creates a draft quotation
type CreateQuotationRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	Date       time.Time         `json:"date" binding:"required"`
	ValidUntil time.Time         `json:"valid_until" binding:"required"`
	Items      []LineItemRequest `json:"items" binding:"dive"`
}

// LineItemRequest is one quotation line in a request body
type LineItemRequest struct {
	Product   string          `json:"product" binding:"required,max=200"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Currency  string          `json:"currency" binding:"required,oneof=USD KRW CNY VND THB IDR"`
}

// RejectQuotationRequest carries the mandatory rejection reason
type RejectQuotationRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// LineItemResponse is one quotation line in API responses
type LineItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
}

// QuotationResponse represents a quotation in API responses
type QuotationResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Number           string                     `json:"number"`
	CustomerID       uuid.UUID                  `json:"customer_id"`
	CustomerName     string                     `json:"customer_name"`
	Date             time.Time                  `json:"date"`
	ValidUntil       time.Time                  `json:"valid_until"`
	Status           string                     `json:"status"`
	Items            []LineItemResponse         `json:"items"`
	TotalsByCurrency map[string]decimal.Decimal `json:"totals_by_currency"`
	FXSnapshot       map[string]decimal.Decimal `json:"fx_snapshot,omitempty"`
	TotalUSD         decimal.Decimal            `json:"total_usd"`
	SubmittedAt      *time.Time                 `json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time                 `json:"approved_at,omitempty"`
	RejectedAt       *time.Time                 `json:"rejected_at,omitempty"`
	RejectReason     string                     `json:"reject_reason,omitempty"`
}

// ToQuotationResponse converts a domain quotation to its API shape
func ToQuotationResponse(q *quotation.Quotation) QuotationResponse {
	items := make([]LineItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = LineItemResponse{
			ID:        item.ID,
			Product:   item.Product,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Currency:  string(item.Currency),
			Amount:    item.Amount,
		}
	}

	totals := make(map[string]decimal.Decimal, len(q.TotalsByCurrency))
	for currency, total := range q.TotalsByCurrency {
		totals[string(currency)] = total
	}
	var snapshot map[string]decimal.Decimal
	if len(q.FXSnapshot) > 0 {
		snapshot = make(map[string]decimal.Decimal, len(q.FXSnapshot))
		for currency, rate := range q.FXSnapshot {
			snapshot[string(currency)] = rate
		}
	}

	return QuotationResponse{
		ID:               q.ID,
		Number:           q.Number,
		CustomerID:       q.CustomerRef,
		CustomerName:     q.CustomerName,
		Date:             q.Date,
		ValidUntil:       q.ValidUntil,
		Status:           q.Status.String(),
		Items:            items,
		TotalsByCurrency: totals,
		FXSnapshot:       snapshot,
		TotalUSD:         q.TotalUSD,
		SubmittedAt:      q.SubmittedAt,
		ApprovedAt:       q.ApprovedAt,
		RejectedAt:       q.RejectedAt,
		RejectReason:     q.RejectReason,
	}
}

// ToQuotationResponses converts a slice of domain quotations
func ToQuotationResponses(quotations []quotation.Quotation) []QuotationResponse {
	out := make([]QuotationResponse, len(quotations))
	for i := range quotations {
		out[i] = ToQuotationResponse(&quotations[i])
	}
	return out
}
