package partner

import (
	"strings"
	"time"

	"github.com/tradeops/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier is a selling counterparty used by purchase orders
type Supplier struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Country     string
	ContactName string
	Phone       string
	Email       string
	Notes       string
	Status      SupplierStatus
}

// NewSupplier creates an active supplier
func NewSupplier(code, name, country string) (*Supplier, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !customerCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code must be 2-50 uppercase letters, digits, hyphens or underscores")
	}
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name must be 1-200 characters")
	}

	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Country:           country,
		Status:            SupplierStatusActive,
	}
	s.AddDomainEvent(NewSupplierCreatedEvent(s))
	return s, nil
}

// Update changes the supplier's basic information
func (s *Supplier) Update(name, country string) error {
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name must be 1-200 characters")
	}
	s.Name = name
	s.Country = country
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate retires the supplier
func (s *Supplier) Deactivate() {
	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
}

// IsActive returns true for active suppliers
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}
