package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps shared by every domain
// entity. Aggregates bump UpdatedAt themselves on mutation.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BaseAggregateRoot extends BaseEntity with an optimistic-lock version and a
// buffer of domain events raised since the aggregate was loaded.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates an aggregate base with a fresh ID and version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{
		BaseEntity: BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Version: 1,
	}
}

// IncrementVersion bumps the optimistic-lock version
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent buffers a domain event raised by the aggregate
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// DomainEvents returns the events buffered since load
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the buffered events once they are dispatched
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
