package quotation

import (
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Event types for the quotation lifecycle
const (
	EventQuotationCreated  = "quotation.created"
	EventQuotationApproved = "quotation.approved"
)

// QuotationCreatedEvent is raised when a quotation is created
type QuotationCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewQuotationCreatedEvent creates a new QuotationCreatedEvent
func NewQuotationCreatedEvent(q *Quotation) *QuotationCreatedEvent {
	return &QuotationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventQuotationCreated, "Quotation", q.ID),
		Number:          q.Number,
	}
}

// QuotationApprovedEvent is raised when a quotation is approved.
// Workflow seeding listens for this.
type QuotationApprovedEvent struct {
	shared.BaseDomainEvent
	Number   string          `json:"number"`
	TotalUSD decimal.Decimal `json:"total_usd"`
}

// NewQuotationApprovedEvent creates a new QuotationApprovedEvent
func NewQuotationApprovedEvent(q *Quotation) *QuotationApprovedEvent {
	return &QuotationApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventQuotationApproved, "Quotation", q.ID),
		Number:          q.Number,
		TotalUSD:        q.TotalUSD,
	}
}
