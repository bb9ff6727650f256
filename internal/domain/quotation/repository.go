package quotation

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Repository persists quotations
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	FindByNumber(ctx context.Context, number string) (*Quotation, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Quotation, error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Quotation, error)
	Save(ctx context.Context, q *Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
