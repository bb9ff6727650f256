package partner

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/partner"
	"github.com/tradeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles customer and supplier management
type Service struct {
	customers partner.CustomerRepository
	suppliers partner.SupplierRepository
	logger    *zap.Logger
}

// NewService creates a new partner Service
func NewService(customers partner.CustomerRepository, suppliers partner.SupplierRepository, logger *zap.Logger) *Service {
	return &Service{
		customers: customers,
		suppliers: suppliers,
		logger:    logger,
	}
}

// CreateCustomer registers a new customer
func (s *Service) CreateCustomer(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := s.customers.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	c, err := partner.NewCustomer(code, req.Name, req.Country)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("customer created", zap.String("code", c.Code))

	resp := ToCustomerResponse(c)
	return &resp, nil
}

// UpdateCustomer changes a customer's basic information
func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.Country); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// SetCustomerContact sets a customer's contact details
func (s *Service) SetCustomerContact(ctx context.Context, id uuid.UUID, req SetContactRequest) (*PartnerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// DeactivateCustomer retires a customer without losing its history
func (s *Service) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.Deactivate()
	return s.customers.Save(ctx, c)
}

// GetCustomer retrieves one customer
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// ListCustomers returns customers matching the filter
func (s *Service) ListCustomers(ctx context.Context, filter shared.Filter) ([]PartnerResponse, error) {
	customers, err := s.customers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// CreateSupplier registers a new supplier
func (s *Service) CreateSupplier(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := s.suppliers.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	sup, err := partner.NewSupplier(code, req.Name, req.Country)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, sup); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", zap.String("code", sup.Code))

	resp := ToSupplierResponse(sup)
	return &resp, nil
}

// UpdateSupplier changes a supplier's basic information
func (s *Service) UpdateSupplier(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sup.Update(req.Name, req.Country); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, sup); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(sup)
	return &resp, nil
}

// DeactivateSupplier retires a supplier
func (s *Service) DeactivateSupplier(ctx context.Context, id uuid.UUID) error {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	sup.Deactivate()
	return s.suppliers.Save(ctx, sup)
}

// GetSupplier retrieves one supplier
func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(sup)
	return &resp, nil
}

// ListSuppliers returns suppliers matching the filter
func (s *Service) ListSuppliers(ctx context.Context, filter shared.Filter) ([]PartnerResponse, error) {
	suppliers, err := s.suppliers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponses(suppliers), nil
}
