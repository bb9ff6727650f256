package fx

import (
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// Event types for the reference FX book
const (
	EventRateRecorded = "fx.rate_recorded"
)

// RateRecordedEvent is raised when a reference rate is recorded or revised
type RateRecordedEvent struct {
	shared.BaseDomainEvent
	Period valueobject.Period   `json:"period"`
	Target valueobject.Currency `json:"target"`
	Rate   decimal.Decimal      `json:"rate"`
}

// NewRateRecordedEvent creates a new RateRecordedEvent
func NewRateRecordedEvent(r *ReferenceRate) *RateRecordedEvent {
	return &RateRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRateRecorded, "ReferenceRate", r.ID),
		Period:          r.Period,
		Target:          r.Target,
		Rate:            r.Rate,
	}
}
