package fx

import (
	"context"

	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// Repository persists reference rates. (scope, period, target) is a unique
// key; FindByPeriod addresses one bucket.
type Repository interface {
	FindByPeriod(ctx context.Context, period valueobject.Period, target valueobject.Currency) (*ReferenceRate, error)
	FindByTarget(ctx context.Context, target valueobject.Currency) ([]ReferenceRate, error)
	FindByTargetBetween(ctx context.Context, target valueobject.Currency, from, to valueobject.Period) ([]ReferenceRate, error)
	Save(ctx context.Context, rate *ReferenceRate) error
}
