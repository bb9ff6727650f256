package fx

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// PlausibilityBand is the tolerated relative deviation of a quarterly rate
// from its configured average. |rate - avg| / avg must not exceed this.
var PlausibilityBand = decimal.NewFromFloat(0.05)

// ReferenceRate is a manually curated USD->target rate bucketed by quarter or
// year. (scope, period, target) is unique; a put on an existing bucket is an
// upsert.
type ReferenceRate struct {
	shared.BaseAggregateRoot
	Period     valueobject.Period
	Target     valueobject.Currency
	Rate       decimal.Decimal
	SourceTag  string
	RecordedBy uuid.UUID
	RecordedAt time.Time
}

// NewQuarterlyRate creates a quarterly reference rate after checking the
// plausibility band against the configured average for the target currency.
// A zero configuredAverage skips the band check (no average configured yet).
func NewQuarterlyRate(year, quarter int, target valueobject.Currency, rate, configuredAverage decimal.Decimal, sourceTag string, recordedBy uuid.UUID) (*ReferenceRate, error) {
	period, err := valueobject.NewQuarterlyPeriod(year, quarter)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate must be positive")
	}
	if configuredAverage.IsPositive() {
		deviation := rate.Sub(configuredAverage).Abs().Div(configuredAverage)
		if deviation.GreaterThan(PlausibilityBand) {
			return nil, shared.NewDomainError("RATE_OUT_OF_BAND",
				fmt.Sprintf("Rate %s deviates more than 5%% from the configured average %s", rate, configuredAverage))
		}
	}

	return newRate(period, target, rate, sourceTag, recordedBy), nil
}

// NewYearlyRate creates a yearly reference rate. Yearly entries are only
// bounded to be positive.
func NewYearlyRate(year int, target valueobject.Currency, rate decimal.Decimal, sourceTag string, recordedBy uuid.UUID) (*ReferenceRate, error) {
	period, err := valueobject.NewYearlyPeriod(year)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate must be positive")
	}

	return newRate(period, target, rate, sourceTag, recordedBy), nil
}

func newRate(period valueobject.Period, target valueobject.Currency, rate decimal.Decimal, sourceTag string, recordedBy uuid.UUID) *ReferenceRate {
	r := &ReferenceRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Period:            period,
		Target:            target,
		Rate:              rate,
		SourceTag:         sourceTag,
		RecordedBy:        recordedBy,
		RecordedAt:        time.Now(),
	}
	r.AddDomainEvent(NewRateRecordedEvent(r))
	return r
}

// Revise replaces the rate value of an existing bucket, preserving identity.
// The same plausibility rules apply as on creation.
func (r *ReferenceRate) Revise(rate, configuredAverage decimal.Decimal, sourceTag string, recordedBy uuid.UUID) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RATE", "Rate must be positive")
	}
	if r.Period.IsQuarterly() && configuredAverage.IsPositive() {
		deviation := rate.Sub(configuredAverage).Abs().Div(configuredAverage)
		if deviation.GreaterThan(PlausibilityBand) {
			return shared.NewDomainError("RATE_OUT_OF_BAND",
				fmt.Sprintf("Rate %s deviates more than 5%% from the configured average %s", rate, configuredAverage))
		}
	}

	r.Rate = rate
	r.SourceTag = sourceTag
	r.RecordedBy = recordedBy
	r.RecordedAt = time.Now()
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewRateRecordedEvent(r))
	return nil
}

func validateTarget(target valueobject.Currency) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency: "+string(target))
	}
	if target == valueobject.BaseCurrency {
		return shared.NewDomainError("INVALID_CURRENCY", "Target cannot be the base currency")
	}
	return nil
}

// Stats summarizes all recorded entries for one target currency
type Stats struct {
	Current decimal.Decimal `json:"current"`
	Mean    decimal.Decimal `json:"mean"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	N       int             `json:"n"`
}

// ComputeStats derives Stats from entries ordered ascending by period.
// Current is the rate of the latest period.
func ComputeStats(entries []ReferenceRate) Stats {
	if len(entries) == 0 {
		return Stats{}
	}

	sum := decimal.Zero
	min := entries[0].Rate
	max := entries[0].Rate
	for _, e := range entries {
		sum = sum.Add(e.Rate)
		if e.Rate.LessThan(min) {
			min = e.Rate
		}
		if e.Rate.GreaterThan(max) {
			max = e.Rate
		}
	}

	return Stats{
		Current: entries[len(entries)-1].Rate,
		Mean:    sum.Div(decimal.NewFromInt(int64(len(entries)))).Round(6),
		Min:     min,
		Max:     max,
		N:       len(entries),
	}
}
