package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/identity"
)

// PrincipalModel is the persistence model for the Principal aggregate
type PrincipalModel struct {
	AggregateModel
	Number         string        `gorm:"type:varchar(20);not null;uniqueIndex"`
	Username       string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName    string        `gorm:"type:varchar(200);not null"`
	PasswordHash   string        `gorm:"type:varchar(100);not null"`
	Tier           identity.Tier `gorm:"type:varchar(20);not null;index"`
	TierAssignedBy *uuid.UUID    `gorm:"type:uuid"`
	TierAssignedAt *time.Time
	Active         bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PrincipalModel) TableName() string {
	return "principals"
}

// ToDomain converts the persistence model to a domain Principal
func (m *PrincipalModel) ToDomain() *identity.Principal {
	return &identity.Principal{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		Username:          m.Username,
		DisplayName:       m.DisplayName,
		PasswordHash:      m.PasswordHash,
		Tier:              m.Tier,
		TierAssignedBy:    m.TierAssignedBy,
		TierAssignedAt:    m.TierAssignedAt,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Principal
func (m *PrincipalModel) FromDomain(p *identity.Principal) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Number = p.Number
	m.Username = p.Username
	m.DisplayName = p.DisplayName
	m.PasswordHash = p.PasswordHash
	m.Tier = p.Tier
	m.TierAssignedBy = p.TierAssignedBy
	m.TierAssignedAt = p.TierAssignedAt
	m.Active = p.Active
}

// PrincipalModelFromDomain creates a persistence model from a domain Principal
func PrincipalModelFromDomain(p *identity.Principal) *PrincipalModel {
	m := &PrincipalModel{}
	m.FromDomain(p)
	return m
}
