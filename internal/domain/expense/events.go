package expense

import (
	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Event types for the expense request lifecycle
const (
	EventRequestCreated  = "expense.request_created"
	EventRequestApproved = "expense.request_approved"
	EventRequestRejected = "expense.request_rejected"
)

// RequestCreatedEvent is raised when an expense request is created
type RequestCreatedEvent struct {
	shared.BaseDomainEvent
	Number    string    `json:"number"`
	Requester uuid.UUID `json:"requester"`
}

// NewRequestCreatedEvent creates a new RequestCreatedEvent
func NewRequestCreatedEvent(r *Request) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestCreated, "ExpenseRequest", r.ID),
		Number:          r.Number,
		Requester:       r.Requester,
	}
}

// RequestApprovedEvent is raised when the full chain approves a request
type RequestApprovedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewRequestApprovedEvent creates a new RequestApprovedEvent
func NewRequestApprovedEvent(r *Request) *RequestApprovedEvent {
	return &RequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestApproved, "ExpenseRequest", r.ID),
		Number:          r.Number,
	}
}

// RequestRejectedEvent is raised when a required slot rejects a request
type RequestRejectedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewRequestRejectedEvent creates a new RequestRejectedEvent
func NewRequestRejectedEvent(r *Request) *RequestRejectedEvent {
	return &RequestRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestRejected, "ExpenseRequest", r.ID),
		Number:          r.Number,
	}
}
