package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/quotation"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/workflow"
	"go.uber.org/zap"
)

// Service drives workflows through the business process
type Service struct {
	workflows  workflow.Repository
	quotations quotation.Repository
	principals identity.Repository
	numbers    numbering.Generator
	logger     *zap.Logger
}

// NewService creates a new workflow Service
func NewService(workflows workflow.Repository, quotations quotation.Repository, principals identity.Repository, numbers numbering.Generator, logger *zap.Logger) *Service {
	return &Service{
		workflows:  workflows,
		quotations: quotations,
		principals: principals,
		numbers:    numbers,
		logger:     logger,
	}
}

// Seed establishes a workflow from an approved quotation. At most one active
// workflow may exist per quotation; a second seed fails with WORKFLOW_EXISTS.
func (s *Service) Seed(ctx context.Context, req SeedWorkflowRequest) (*WorkflowResponse, error) {
	if err := s.authorize(ctx, req.Actor, "workflow.seed"); err != nil {
		return nil, err
	}

	q, err := s.quotations.FindByID(ctx, req.QuotationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.workflows.FindActiveByQuotation(ctx, q.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrWorkflowExists
	}

	number, err := s.numbers.Next(ctx, numbering.KindWorkflow, time.Now())
	if err != nil {
		return nil, err
	}

	w, err := workflow.SeedFromQuotation(number, q, req.Actor)
	if err != nil {
		return nil, err
	}
	if err := s.workflows.Save(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("workflow seeded",
		zap.String("number", w.Number),
		zap.String("quotation", q.Number),
		zap.String("amount_usd", w.AmountUSD.String()))

	resp := ToWorkflowResponse(w)
	return &resp, nil
}

// Advance moves a workflow exactly one stage forward. Saves under the
// optimistic lock so two racing advances cannot both land.
func (s *Service) Advance(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*WorkflowResponse, error) {
	if err := s.authorize(ctx, actor, "workflow.advance"); err != nil {
		return nil, err
	}

	w, err := s.workflows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Advance(actor); err != nil {
		return nil, err
	}
	if err := s.workflows.SaveWithLock(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("workflow advanced",
		zap.String("number", w.Number),
		zap.String("stage", w.CurrentStage.String()))

	resp := ToWorkflowResponse(w)
	return &resp, nil
}

// Cancel terminates an active workflow with a recorded reason
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req CancelWorkflowRequest) (*WorkflowResponse, error) {
	if err := s.authorize(ctx, req.Actor, "workflow.cancel"); err != nil {
		return nil, err
	}

	w, err := s.workflows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Cancel(req.Actor, req.Reason); err != nil {
		return nil, err
	}
	if err := s.workflows.SaveWithLock(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("workflow cancelled",
		zap.String("number", w.Number),
		zap.String("reason", req.Reason))

	resp := ToWorkflowResponse(w)
	return &resp, nil
}

// GetByID retrieves one workflow including its full stage history
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*WorkflowResponse, error) {
	w, err := s.workflows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWorkflowResponse(w)
	return &resp, nil
}

// List returns workflows matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]WorkflowResponse, error) {
	workflows, err := s.workflows.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToWorkflowResponses(workflows), nil
}

// ByStage lists workflows currently sitting at the given stage
func (s *Service) ByStage(ctx context.Context, stage string) ([]WorkflowResponse, error) {
	st := workflow.Stage(stage)
	if !st.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Unknown workflow stage: "+stage)
	}
	workflows, err := s.workflows.FindByStage(ctx, st)
	if err != nil {
		return nil, err
	}
	return ToWorkflowResponses(workflows), nil
}

// Stats summarizes the workflow book across all statuses and stages
func (s *Service) Stats(ctx context.Context) (*Statistics, error) {
	active, err := s.workflows.CountByStatus(ctx, workflow.StatusActive)
	if err != nil {
		return nil, err
	}
	completed, err := s.workflows.CountByStatus(ctx, workflow.StatusCompleted)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.workflows.CountByStatus(ctx, workflow.StatusCancelled)
	if err != nil {
		return nil, err
	}

	all, err := s.workflows.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10000})
	if err != nil {
		return nil, err
	}
	perStage := make(map[string]int)
	totalValue := decimal.Zero
	for i := range all {
		perStage[all[i].CurrentStage.String()]++
		totalValue = totalValue.Add(all[i].AmountUSD)
	}

	total := active + completed + cancelled
	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(completed).Div(decimal.NewFromInt(total)).Round(4)
	}

	return &Statistics{
		Total:          total,
		Active:         active,
		Completed:      completed,
		Cancelled:      cancelled,
		PerStage:       perStage,
		TotalValueUSD:  totalValue.Round(2),
		CompletionRate: rate,
	}, nil
}

// authorize checks the actor's tier against the named operation
func (s *Service) authorize(ctx context.Context, actor uuid.UUID, operation string) error {
	principal, err := s.principals.FindByID(ctx, actor)
	if err != nil {
		return err
	}
	if !principal.Can(operation) {
		return shared.ErrForbidden
	}
	return nil
}
