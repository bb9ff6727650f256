package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/fx"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// ReferenceRateModel is the persistence model for the ReferenceRate aggregate.
// (scope, year, quarter, target) is the bucket key; quarter is 0 for yearly
// entries.
type ReferenceRateModel struct {
	AggregateModel
	Scope      string               `gorm:"type:varchar(10);not null;uniqueIndex:idx_rate_bucket,priority:1"`
	Year       int                  `gorm:"not null;uniqueIndex:idx_rate_bucket,priority:2"`
	Quarter    int                  `gorm:"not null;default:0;uniqueIndex:idx_rate_bucket,priority:3"`
	Target     valueobject.Currency `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_bucket,priority:4;index"`
	Rate       decimal.Decimal      `gorm:"type:decimal(18,6);not null"`
	SourceTag  string               `gorm:"type:varchar(100)"`
	RecordedBy uuid.UUID            `gorm:"type:uuid;not null"`
	RecordedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReferenceRateModel) TableName() string {
	return "reference_rates"
}

// ToDomain converts the persistence model to a domain ReferenceRate
func (m *ReferenceRateModel) ToDomain() (*fx.ReferenceRate, error) {
	var period valueobject.Period
	var err error
	if valueobject.PeriodScope(m.Scope) == valueobject.ScopeQuarterly {
		period, err = valueobject.NewQuarterlyPeriod(m.Year, m.Quarter)
	} else {
		period, err = valueobject.NewYearlyPeriod(m.Year)
	}
	if err != nil {
		return nil, err
	}

	return &fx.ReferenceRate{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Period:            period,
		Target:            m.Target,
		Rate:              m.Rate,
		SourceTag:         m.SourceTag,
		RecordedBy:        m.RecordedBy,
		RecordedAt:        m.RecordedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain ReferenceRate
func (m *ReferenceRateModel) FromDomain(r *fx.ReferenceRate) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Scope = string(r.Period.Scope())
	m.Year = r.Period.Year()
	m.Quarter = r.Period.Quarter()
	m.Target = r.Target
	m.Rate = r.Rate
	m.SourceTag = r.SourceTag
	m.RecordedBy = r.RecordedBy
	m.RecordedAt = r.RecordedAt
}

// ReferenceRateModelFromDomain creates a persistence model from a domain rate
func ReferenceRateModelFromDomain(r *fx.ReferenceRate) *ReferenceRateModel {
	m := &ReferenceRateModel{}
	m.FromDomain(r)
	return m
}
