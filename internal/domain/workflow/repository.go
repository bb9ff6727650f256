package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Repository persists workflows
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Workflow, error)
	FindByNumber(ctx context.Context, number string) (*Workflow, error)
	FindActiveByQuotation(ctx context.Context, quotationID uuid.UUID) (*Workflow, error)
	FindByStage(ctx context.Context, stage Stage) ([]Workflow, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Workflow, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	Save(ctx context.Context, w *Workflow) error
	SaveWithLock(ctx context.Context, w *Workflow) error
}
