package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/partner"
)

// CreatePartnerRequest creates a customer or supplier
type CreatePartnerRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=50"`
	Name    string `json:"name" binding:"required,max=200"`
	Country string `json:"country" binding:"max=100"`
}

// UpdatePartnerRequest changes basic information
type UpdatePartnerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Country string `json:"country" binding:"max=100"`
}

// SetContactRequest sets contact details
type SetContactRequest struct {
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// PartnerResponse represents a customer or supplier in API responses
type PartnerResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its API shape
func ToCustomerResponse(c *partner.Customer) PartnerResponse {
	return PartnerResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Country:     c.Country,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToSupplierResponse converts a domain supplier to its API shape
func ToSupplierResponse(s *partner.Supplier) PartnerResponse {
	return PartnerResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		Country:     s.Country,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []PartnerResponse {
	out := make([]PartnerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}

// ToSupplierResponses converts a slice of domain suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []PartnerResponse {
	out := make([]PartnerResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out
}
