package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/tradeops/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var customerCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,50}$`)

// Customer is a buying counterparty. Quotations and workflows reference
// customers by ID and carry a denormalized name snapshot.
type Customer struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Country     string
	ContactName string
	Phone       string
	Email       string
	Notes       string
	Status      CustomerStatus
}

// NewCustomer creates an active customer
func NewCustomer(code, name, country string) (*Customer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !customerCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code must be 2-50 uppercase letters, digits, hyphens or underscores")
	}
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name must be 1-200 characters")
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Country:           country,
		Status:            CustomerStatusActive,
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// Update changes the customer's basic information
func (c *Customer) Update(name, country string) error {
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name must be 1-200 characters")
	}
	c.Name = name
	c.Country = country
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(contactName, phone, email string) error {
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate retires the customer without deleting its history
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
}

// Activate restores a deactivated customer
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
}

// IsActive returns true for active customers
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
