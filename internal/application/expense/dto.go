package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/expense"
)

// ApproverSpec names one approver slot in a creation request
type ApproverSpec struct {
	ApproverID uuid.UUID `json:"approver_id" binding:"required"`
	Required   bool      `json:"required"`
}

// CreateRequestRequest creates a new expense request with a sealed chain
type CreateRequestRequest struct {
	Title        string          `json:"title" binding:"required,max=200"`
	Description  string          `json:"description" binding:"max=2000"`
	Category     string          `json:"category" binding:"required,oneof=TRAVEL ENTERTAINMENT SUPPLIES EDUCATION WELFARE OTHER"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency" binding:"required,oneof=USD KRW CNY VND THB IDR"`
	ExpectedDate time.Time       `json:"expected_date" binding:"required"`
	Approvers    []ApproverSpec  `json:"approvers" binding:"required,min=1,dive"`
	Requester    uuid.UUID       `json:"-"`
}

// DecideRequest carries an approve/reject decision on one slot
type DecideRequest struct {
	Comment string    `json:"comment" binding:"max=500"`
	Caller  uuid.UUID `json:"-"`
}

// SlotResponse is one approval slot in API responses
type SlotResponse struct {
	ID        uuid.UUID  `json:"id"`
	StepIndex int        `json:"step_index"`
	Approver  uuid.UUID  `json:"approver"`
	Required  bool       `json:"required"`
	Result    string     `json:"result"`
	Comment   string     `json:"comment,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// RequestResponse represents an expense request in API responses
type RequestResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Requester    uuid.UUID       `json:"requester"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExpectedDate time.Time       `json:"expected_date"`
	Status       string          `json:"status"`
	CurrentStep  int             `json:"current_step"`
	TotalSteps   int             `json:"total_steps"`
	Slots        []SlotResponse  `json:"slots"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToRequestResponse converts a domain request to its API shape
func ToRequestResponse(r *expense.Request) RequestResponse {
	slots := make([]SlotResponse, len(r.Chain.Slots))
	for i, slot := range r.Chain.Slots {
		slots[i] = SlotResponse{
			ID:        slot.ID,
			StepIndex: slot.StepIndex,
			Approver:  slot.Approver,
			Required:  slot.Required,
			Result:    string(slot.Result),
			Comment:   slot.Comment,
			DecidedAt: slot.DecidedAt,
		}
	}

	return RequestResponse{
		ID:           r.ID,
		Number:       r.Number,
		Requester:    r.Requester,
		Title:        r.Title,
		Description:  r.Description,
		Category:     string(r.Category),
		Amount:       r.Amount.Amount(),
		Currency:     string(r.Amount.Currency()),
		ExpectedDate: r.ExpectedDate,
		Status:       string(r.Status),
		CurrentStep:  r.CurrentStep(),
		TotalSteps:   r.TotalSteps,
		Slots:        slots,
		CompletedAt:  r.CompletedAt,
		CreatedAt:    r.CreatedAt,
	}
}

// ToRequestResponses converts a slice of domain requests
func ToRequestResponses(requests []expense.Request) []RequestResponse {
	out := make([]RequestResponse, len(requests))
	for i := range requests {
		out[i] = ToRequestResponse(&requests[i])
	}
	return out
}
