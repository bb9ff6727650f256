package partner

import (
	"github.com/tradeops/backend/internal/domain/shared"
)

// Event types for the partner domain
const (
	EventCustomerCreated = "partner.customer_created"
	EventSupplierCreated = "partner.supplier_created"
)

// CustomerCreatedEvent fires when a customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCustomerCreated, "Customer", c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// SupplierCreatedEvent fires when a supplier is registered
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

func NewSupplierCreatedEvent(s *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSupplierCreated, "Supplier", s.ID),
		Code:            s.Code,
		Name:            s.Name,
	}
}
