package workflow

import (
	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Event types for the workflow lifecycle
const (
	EventWorkflowSeeded    = "workflow.seeded"
	EventWorkflowAdvanced  = "workflow.advanced"
	EventWorkflowCompleted = "workflow.completed"
	EventWorkflowCancelled = "workflow.cancelled"
)

// WorkflowSeededEvent is raised when a workflow is seeded from a quotation
type WorkflowSeededEvent struct {
	shared.BaseDomainEvent
	Number      string    `json:"number"`
	QuotationID uuid.UUID `json:"quotation_id"`
}

// NewWorkflowSeededEvent creates a new WorkflowSeededEvent
func NewWorkflowSeededEvent(w *Workflow) *WorkflowSeededEvent {
	return &WorkflowSeededEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkflowSeeded, "Workflow", w.ID),
		Number:          w.Number,
		QuotationID:     w.QuotationID,
	}
}

// WorkflowAdvancedEvent is raised on each stage transition
type WorkflowAdvancedEvent struct {
	shared.BaseDomainEvent
	Number string    `json:"number"`
	Stage  Stage     `json:"stage"`
	Actor  uuid.UUID `json:"actor"`
}

// NewWorkflowAdvancedEvent creates a new WorkflowAdvancedEvent
func NewWorkflowAdvancedEvent(w *Workflow, actor uuid.UUID) *WorkflowAdvancedEvent {
	return &WorkflowAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkflowAdvanced, "Workflow", w.ID),
		Number:          w.Number,
		Stage:           w.CurrentStage,
		Actor:           actor,
	}
}

// WorkflowCompletedEvent is raised when the workflow reaches Settled
type WorkflowCompletedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewWorkflowCompletedEvent creates a new WorkflowCompletedEvent
func NewWorkflowCompletedEvent(w *Workflow) *WorkflowCompletedEvent {
	return &WorkflowCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkflowCompleted, "Workflow", w.ID),
		Number:          w.Number,
	}
}

// WorkflowCancelledEvent is raised on cancellation
type WorkflowCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewWorkflowCancelledEvent creates a new WorkflowCancelledEvent
func NewWorkflowCancelledEvent(w *Workflow, reason string) *WorkflowCancelledEvent {
	return &WorkflowCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkflowCancelled, "Workflow", w.ID),
		Number:          w.Number,
		Reason:          reason,
	}
}
