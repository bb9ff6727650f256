package fx

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/fx"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// RateCache is a read-through cache for dated rate lookups. Puts invalidate
// the target currency wholesale; lookups are cheap to recompute.
type RateCache interface {
	Get(ctx context.Context, period valueobject.Period, target valueobject.Currency) (decimal.Decimal, bool)
	Set(ctx context.Context, period valueobject.Period, target valueobject.Currency, rate decimal.Decimal)
	InvalidateTarget(ctx context.Context, target valueobject.Currency) error
}

// Service curates the reference rate book
type Service struct {
	rates    fx.Repository
	cache    RateCache
	averages map[valueobject.Currency]decimal.Decimal
	logger   *zap.Logger
}

// NewService creates a new FX Service. averages carries the configured
// per-currency averages used by the quarterly plausibility check; currencies
// missing from the map skip the check.
func NewService(rates fx.Repository, cache RateCache, averages map[valueobject.Currency]decimal.Decimal, logger *zap.Logger) *Service {
	if averages == nil {
		averages = map[valueobject.Currency]decimal.Decimal{}
	}
	return &Service{rates: rates, cache: cache, averages: averages, logger: logger}
}

// PutQuarterly records or revises a quarterly bucket. Existing buckets are
// revised in place, preserving identity.
func (s *Service) PutQuarterly(ctx context.Context, req PutQuarterlyRateRequest) (*RateResponse, error) {
	target, err := valueobject.ParseCurrency(req.Target)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	avg := s.averages[target]

	period, err := valueobject.NewQuarterlyPeriod(req.Year, req.Quarter)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}
	return s.put(ctx, period, target, req.Rate, avg, req.SourceTag, req.RecordedBy)
}

// PutYearly records or revises a yearly bucket
func (s *Service) PutYearly(ctx context.Context, req PutYearlyRateRequest) (*RateResponse, error) {
	target, err := valueobject.ParseCurrency(req.Target)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	period, err := valueobject.NewYearlyPeriod(req.Year)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}
	return s.put(ctx, period, target, req.Rate, decimal.Zero, req.SourceTag, req.RecordedBy)
}

func (s *Service) put(ctx context.Context, period valueobject.Period, target valueobject.Currency, rate, avg decimal.Decimal, sourceTag string, recordedBy uuid.UUID) (*RateResponse, error) {
	existing, err := s.rates.FindByPeriod(ctx, period, target)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var entry *fx.ReferenceRate
	if existing != nil {
		if err := existing.Revise(rate, avg, sourceTag, recordedBy); err != nil {
			return nil, err
		}
		entry = existing
	} else if period.IsQuarterly() {
		entry, err = fx.NewQuarterlyRate(period.Year(), period.Quarter(), target, rate, avg, sourceTag, recordedBy)
		if err != nil {
			return nil, err
		}
	} else {
		entry, err = fx.NewYearlyRate(period.Year(), target, rate, sourceTag, recordedBy)
		if err != nil {
			return nil, err
		}
	}

	if err := s.rates.Save(ctx, entry); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateTarget(ctx, target); err != nil {
			s.logger.Warn("rate cache invalidation failed",
				zap.String("target", string(target)), zap.Error(err))
		}
	}
	s.logger.Info("reference rate recorded",
		zap.String("period", period.String()),
		zap.String("target", string(target)),
		zap.String("rate", rate.String()))

	resp := ToRateResponse(entry)
	return &resp, nil
}

// GetFor resolves the rate applicable to a date: the quarterly bucket of the
// date's quarter wins; the yearly bucket of the date's year is the fallback.
// No bucket at all fails with NO_RATE.
func (s *Service) GetFor(ctx context.Context, date time.Time, target valueobject.Currency) (*LookupResponse, error) {
	if err := validateLookupTarget(target); err != nil {
		return nil, err
	}

	for _, period := range []valueobject.Period{valueobject.QuarterOf(date), valueobject.YearOf(date)} {
		if s.cache != nil {
			if rate, ok := s.cache.Get(ctx, period, target); ok {
				return lookupResponse(date, period, target, rate), nil
			}
		}
		entry, err := s.rates.FindByPeriod(ctx, period, target)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(ctx, period, target, entry.Rate)
		}
		return lookupResponse(date, period, target, entry.Rate), nil
	}
	return nil, shared.ErrNoRate
}

// SnapshotFor collects the applicable rate for every non-base currency. Used
// to freeze an FX snapshot at quotation approval. Currencies without any
// bucket are simply absent from the map.
func (s *Service) SnapshotFor(ctx context.Context, date time.Time) (map[valueobject.Currency]decimal.Decimal, error) {
	snapshot := make(map[valueobject.Currency]decimal.Decimal)
	for _, target := range valueobject.Currencies {
		if target == valueobject.BaseCurrency {
			continue
		}
		lookup, err := s.GetFor(ctx, date, target)
		if errors.Is(err, shared.ErrNoRate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snapshot[target] = lookup.Rate
	}
	return snapshot, nil
}

// History lists all recorded buckets for a target, ascending by period
func (s *Service) History(ctx context.Context, target valueobject.Currency) ([]RateResponse, error) {
	if err := validateLookupTarget(target); err != nil {
		return nil, err
	}
	entries, err := s.rates.FindByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	return ToRateResponses(entries), nil
}

// Stats summarizes the recorded buckets for a target currency
func (s *Service) Stats(ctx context.Context, target valueobject.Currency) (*fx.Stats, error) {
	if err := validateLookupTarget(target); err != nil {
		return nil, err
	}
	entries, err := s.rates.FindByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	stats := fx.ComputeStats(entries)
	return &stats, nil
}

func validateLookupTarget(target valueobject.Currency) error {
	if !target.IsValid() || target == valueobject.BaseCurrency {
		return shared.NewDomainError("INVALID_CURRENCY", "Unsupported lookup currency: "+string(target))
	}
	return nil
}

func lookupResponse(date time.Time, period valueobject.Period, target valueobject.Currency, rate decimal.Decimal) *LookupResponse {
	return &LookupResponse{
		Target: string(target),
		Date:   date.Format("2006-01-02"),
		Period: period.String(),
		Scope:  string(period.Scope()),
		Rate:   rate,
	}
}
