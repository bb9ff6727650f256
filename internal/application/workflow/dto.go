package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/workflow"
)

// SeedWorkflowRequest establishes a workflow from an approved quotation
type SeedWorkflowRequest struct {
	QuotationID uuid.UUID `json:"quotation_id" binding:"required"`
	Actor       uuid.UUID `json:"-"`
}

// CancelWorkflowRequest carries the mandatory cancellation reason
type CancelWorkflowRequest struct {
	Reason string    `json:"reason" binding:"required,max=500"`
	Actor  uuid.UUID `json:"-"`
}

// HistoryEntryResponse is one step of the stage history
type HistoryEntryResponse struct {
	Stage     string     `json:"stage"`
	EnteredAt time.Time  `json:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at,omitempty"`
	Actor     uuid.UUID  `json:"actor"`
}

// WorkflowResponse represents a workflow in API responses
type WorkflowResponse struct {
	ID           uuid.UUID              `json:"id"`
	Number       string                 `json:"number"`
	QuotationID  uuid.UUID              `json:"quotation_id"`
	CustomerID   uuid.UUID              `json:"customer_id"`
	CustomerName string                 `json:"customer_name"`
	AmountUSD    decimal.Decimal        `json:"amount_usd"`
	CurrentStage string                 `json:"current_stage"`
	StageIndex   int                    `json:"stage_index"`
	Status       string                 `json:"status"`
	History      []HistoryEntryResponse `json:"history"`
	CancelReason string                 `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// Statistics summarizes the workflow book. TotalValueUSD re-converts every
// workflow's fixed USD amount; the fixed amounts themselves never change.
type Statistics struct {
	Total          int64           `json:"total"`
	Active         int64           `json:"active"`
	Completed      int64           `json:"completed"`
	Cancelled      int64           `json:"cancelled"`
	PerStage       map[string]int  `json:"per_stage"`
	TotalValueUSD  decimal.Decimal `json:"total_value_usd"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
}

// ToWorkflowResponse converts a domain workflow to its API shape
func ToWorkflowResponse(w *workflow.Workflow) WorkflowResponse {
	history := make([]HistoryEntryResponse, len(w.History))
	for i, entry := range w.History {
		history[i] = HistoryEntryResponse{
			Stage:     entry.Stage.String(),
			EnteredAt: entry.EnteredAt,
			ExitedAt:  entry.ExitedAt,
			Actor:     entry.Actor,
		}
	}

	return WorkflowResponse{
		ID:           w.ID,
		Number:       w.Number,
		QuotationID:  w.QuotationID,
		CustomerID:   w.CustomerRef,
		CustomerName: w.CustomerName,
		AmountUSD:    w.AmountUSD,
		CurrentStage: w.CurrentStage.String(),
		StageIndex:   w.CurrentStage.Index(),
		Status:       string(w.Status),
		History:      history,
		CancelReason: w.CancelReason,
		CreatedAt:    w.CreatedAt,
	}
}

// ToWorkflowResponses converts a slice of domain workflows
func ToWorkflowResponses(workflows []workflow.Workflow) []WorkflowResponse {
	out := make([]WorkflowResponse, len(workflows))
	for i := range workflows {
		out[i] = ToWorkflowResponse(&workflows[i])
	}
	return out
}
