package quotation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/partner"
	"github.com/tradeops/backend/internal/domain/quotation"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// FXSnapshotProvider supplies the applicable USD->currency rates for a date.
// Approval freezes the returned map into the quotation; later rate changes
// never touch an approved document.
type FXSnapshotProvider interface {
	SnapshotFor(ctx context.Context, date time.Time) (map[valueobject.Currency]decimal.Decimal, error)
}

// Service handles quotation lifecycle operations
type Service struct {
	quotations quotation.Repository
	customers  partner.CustomerRepository
	numbers    numbering.Generator
	fx         FXSnapshotProvider
	logger     *zap.Logger
}

// NewService creates a new quotation Service
func NewService(quotations quotation.Repository, customers partner.CustomerRepository, numbers numbering.Generator, fx FXSnapshotProvider, logger *zap.Logger) *Service {
	return &Service{
		quotations: quotations,
		customers:  customers,
		numbers:    numbers,
		fx:         fx,
		logger:     logger,
	}
}

// Create allocates a document number and creates a draft quotation
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (*QuotationResponse, error) {
	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot quote an inactive customer")
	}

	number, err := s.numbers.Next(ctx, numbering.KindQuotation, req.Date)
	if err != nil {
		return nil, err
	}

	q, err := quotation.NewQuotation(number, customer.ID, customer.Name, req.Date, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		currency, err := valueobject.ParseCurrency(item.Currency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
		}
		if _, err := q.AddItem(item.Product, item.Quantity, item.UnitPrice, currency); err != nil {
			return nil, err
		}
	}

	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	s.logger.Info("quotation created",
		zap.String("number", q.Number),
		zap.String("customer", customer.Code),
		zap.Int("items", q.ItemCount()))

	resp := ToQuotationResponse(q)
	return &resp, nil
}

// AddItem appends a line item to a draft quotation
func (s *Service) AddItem(ctx context.Context, id uuid.UUID, req LineItemRequest) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(req.Currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	if _, err := q.AddItem(req.Product, req.Quantity, req.UnitPrice, currency); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// RemoveItem deletes a line item from a draft quotation
func (s *Service) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := q.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// Submit moves a draft quotation in front of the approvers
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := q.Submit(); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// Approve approves a submitted quotation, freezing the FX snapshot of the
// quotation date into the document
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.fx.SnapshotFor(ctx, q.Date)
	if err != nil {
		return nil, err
	}
	if err := q.Approve(snapshot); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	s.logger.Info("quotation approved",
		zap.String("number", q.Number),
		zap.String("total_usd", q.TotalUSD.String()))

	resp := ToQuotationResponse(q)
	return &resp, nil
}

// Reject rejects a submitted quotation with a reason
func (s *Service) Reject(ctx context.Context, id uuid.UUID, req RejectQuotationRequest) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := q.Reject(req.Reason); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// Delete removes a quotation. Only drafts can be deleted; submitted and
// decided documents are part of the audit trail.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !q.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotations can be deleted")
	}
	return s.quotations.Delete(ctx, id)
}

// GetByID retrieves one quotation
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// GetByNumber retrieves one quotation by its document number
func (s *Service) GetByNumber(ctx context.Context, number string) (*QuotationResponse, error) {
	q, err := s.quotations.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// List returns quotations, optionally filtered by status
func (s *Service) List(ctx context.Context, status string, filter shared.Filter) ([]QuotationResponse, error) {
	if status != "" {
		st := quotation.Status(status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown quotation status: "+status)
		}
		items, err := s.quotations.FindByStatus(ctx, st, filter)
		if err != nil {
			return nil, err
		}
		return ToQuotationResponses(items), nil
	}

	items, err := s.quotations.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToQuotationResponses(items), nil
}
