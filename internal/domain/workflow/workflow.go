package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/quotation"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a workflow
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// HistoryEntry is one step of the append-only stage history
type HistoryEntry struct {
	Stage     Stage
	EnteredAt time.Time
	ExitedAt  *time.Time
	Actor     uuid.UUID
}

// Workflow drives an approved quotation through the seven business-process
// stages. The monetary value is fixed at seed time; later FX changes never
// mutate it.
type Workflow struct {
	shared.BaseAggregateRoot
	Number       string // WF<YYYYMMDDhhmmss>
	QuotationID  uuid.UUID
	CustomerRef  uuid.UUID
	CustomerName string
	AmountUSD    decimal.Decimal
	CurrentStage Stage
	Status       Status
	History      []HistoryEntry
	CancelReason string
}

// SeedFromQuotation establishes a workflow at the first stage from an
// approved quotation. Fails with NOT_APPROVED if the quotation is not
// approved. The WORKFLOW_EXISTS uniqueness check (at most one active workflow
// per quotation) belongs to the service, which owns the repository view.
func SeedFromQuotation(number string, q *quotation.Quotation, actor uuid.UUID) (*Workflow, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Workflow number cannot be empty")
	}
	if q == nil {
		return nil, shared.ErrNotFound
	}
	if !q.IsApproved() {
		return nil, shared.ErrNotApproved
	}

	now := time.Now()
	w := &Workflow{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		QuotationID:       q.ID,
		CustomerRef:       q.CustomerRef,
		CustomerName:      q.CustomerName,
		AmountUSD:         q.TotalUSD,
		CurrentStage:      StageQuotationApproved,
		Status:            StatusActive,
		History: []HistoryEntry{
			{Stage: StageQuotationApproved, EnteredAt: now, Actor: actor},
		},
	}
	w.AddDomainEvent(NewWorkflowSeededEvent(w))
	return w, nil
}

// Advance moves the workflow exactly one stage forward. It is not
// idempotent: two sequential calls advance twice. Advancing out of the last
// stage fails with TERMINAL; a cancelled or completed workflow fails with
// NOT_ACTIVE.
func (w *Workflow) Advance(actor uuid.UUID) error {
	if w.Status == StatusCancelled {
		return shared.ErrNotActive
	}

	next, ok := w.CurrentStage.Next()
	if !ok {
		// Already at Settled
		return shared.ErrTerminal
	}
	if w.Status != StatusActive {
		return shared.ErrNotActive
	}

	now := time.Now()
	w.closeCurrentEntry(now)
	w.History = append(w.History, HistoryEntry{Stage: next, EnteredAt: now, Actor: actor})
	w.CurrentStage = next
	w.UpdatedAt = now

	if next == StageSettled {
		w.Status = StatusCompleted
		w.AddDomainEvent(NewWorkflowCompletedEvent(w))
	} else {
		w.AddDomainEvent(NewWorkflowAdvancedEvent(w, actor))
	}
	return nil
}

// Cancel moves the workflow from any non-terminal state to Cancelled.
// Irrecoverable; the reason is recorded.
func (w *Workflow) Cancel(actor uuid.UUID, reason string) error {
	if w.Status != StatusActive {
		return shared.ErrNotActive
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	w.closeCurrentEntry(now)
	w.History = append(w.History, HistoryEntry{Stage: StageCancelled, EnteredAt: now, Actor: actor})
	w.CurrentStage = StageCancelled
	w.Status = StatusCancelled
	w.CancelReason = reason
	w.UpdatedAt = now

	w.AddDomainEvent(NewWorkflowCancelledEvent(w, reason))
	return nil
}

// closeCurrentEntry stamps the exit time on the open history entry
func (w *Workflow) closeCurrentEntry(at time.Time) {
	if len(w.History) == 0 {
		return
	}
	last := &w.History[len(w.History)-1]
	if last.ExitedAt == nil {
		last.ExitedAt = &at
	}
}

// IsActive returns true while the workflow can still advance or cancel
func (w *Workflow) IsActive() bool {
	return w.Status == StatusActive
}

// IsCompleted returns true once the workflow settled
func (w *Workflow) IsCompleted() bool {
	return w.Status == StatusCompleted
}

// IsCancelled returns true after cancellation
func (w *Workflow) IsCancelled() bool {
	return w.Status == StatusCancelled
}
