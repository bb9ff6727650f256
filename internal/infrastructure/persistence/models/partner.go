package models

import (
	"github.com/tradeops/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	Code        string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	Country     string                 `gorm:"type:varchar(100)"`
	ContactName string                 `gorm:"type:varchar(100)"`
	Phone       string                 `gorm:"type:varchar(50)"`
	Email       string                 `gorm:"type:varchar(200)"`
	Notes       string                 `gorm:"type:text"`
	Status      partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Country:           m.Country,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Email:             m.Email,
		Notes:             m.Notes,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Country = c.Country
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Notes = c.Notes
	m.Status = c.Status
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate
type SupplierModel struct {
	AggregateModel
	Code        string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	Country     string                 `gorm:"type:varchar(100)"`
	ContactName string                 `gorm:"type:varchar(100)"`
	Phone       string                 `gorm:"type:varchar(50)"`
	Email       string                 `gorm:"type:varchar(200)"`
	Notes       string                 `gorm:"type:text"`
	Status      partner.SupplierStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Country:           m.Country,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Email:             m.Email,
		Notes:             m.Notes,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Supplier
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.Country = s.Country
	m.ContactName = s.ContactName
	m.Phone = s.Phone
	m.Email = s.Email
	m.Notes = s.Notes
	m.Status = s.Status
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}
