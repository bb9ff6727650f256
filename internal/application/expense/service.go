package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/approval"
	"github.com/tradeops/backend/internal/domain/expense"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles expense request operations
type Service struct {
	requests   expense.Repository
	principals identity.Repository
	numbers    numbering.Generator
	logger     *zap.Logger
}

// NewService creates a new expense Service
func NewService(requests expense.Repository, principals identity.Repository, numbers numbering.Generator, logger *zap.Logger) *Service {
	return &Service{
		requests:   requests,
		principals: principals,
		numbers:    numbers,
		logger:     logger,
	}
}

// Create allocates a number and creates an expense request with its sealed
// approval chain
func (s *Service) Create(ctx context.Context, req CreateRequestRequest) (*RequestResponse, error) {
	number, err := s.numbers.Next(ctx, numbering.KindExpenseRequest, time.Now())
	if err != nil {
		return nil, err
	}

	specs := make([]approval.SlotSpec, len(req.Approvers))
	for i, a := range req.Approvers {
		specs[i] = approval.SlotSpec{Approver: a.ApproverID, Required: a.Required}
	}

	currency, err := valueobject.ParseCurrency(req.Currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	request, err := expense.NewRequest(number, req.Requester, req.Title, req.Description,
		expense.Category(req.Category), req.Amount, currency, req.ExpectedDate, specs)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info("expense request created",
		zap.String("number", request.Number),
		zap.Int("steps", request.TotalSteps))

	resp := ToRequestResponse(request)
	return &resp, nil
}

// GetByID retrieves one expense request
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*RequestResponse, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRequestResponse(request)
	return &resp, nil
}

// MyRequests lists the caller's own requests
func (s *Service) MyRequests(ctx context.Context, requester uuid.UUID, filter shared.Filter) ([]RequestResponse, error) {
	requests, err := s.requests.FindByRequester(ctx, requester, filter)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// PendingForMe lists requests whose current slot belongs to the caller
func (s *Service) PendingForMe(ctx context.Context, approver uuid.UUID) ([]RequestResponse, error) {
	requests, err := s.requests.FindPendingForApprover(ctx, approver)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// Approve records an approval on one slot
func (s *Service) Approve(ctx context.Context, slotID uuid.UUID, req DecideRequest) (*RequestResponse, error) {
	return s.decide(ctx, slotID, req, func(r *expense.Request) error {
		return r.Approve(slotID, req.Caller, req.Comment)
	})
}

// Reject records a rejection on one slot
func (s *Service) Reject(ctx context.Context, slotID uuid.UUID, req DecideRequest) (*RequestResponse, error) {
	return s.decide(ctx, slotID, req, func(r *expense.Request) error {
		return r.Reject(slotID, req.Caller, req.Comment)
	})
}

// Skip passes over a non-required slot. Restricted to admin-tier callers.
func (s *Service) Skip(ctx context.Context, slotID uuid.UUID, req DecideRequest) (*RequestResponse, error) {
	caller, err := s.principals.FindByID(ctx, req.Caller)
	if err != nil {
		return nil, err
	}
	if !caller.Active || !caller.Tier.AtLeast(identity.TierAdmin) {
		return nil, shared.ErrForbidden
	}
	return s.decide(ctx, slotID, req, func(r *expense.Request) error {
		return r.Skip(slotID, req.Comment)
	})
}

// Complete marks an approved request as paid out
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*RequestResponse, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := request.Complete(); err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}
	resp := ToRequestResponse(request)
	return &resp, nil
}

func (s *Service) decide(ctx context.Context, slotID uuid.UUID, req DecideRequest, op func(*expense.Request) error) (*RequestResponse, error) {
	request, err := s.requests.FindBySlotID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if err := op(request); err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info("expense decision recorded",
		zap.String("number", request.Number),
		zap.String("status", string(request.Status)),
		zap.Int("current_step", request.CurrentStep()))

	resp := ToRequestResponse(request)
	return &resp, nil
}
