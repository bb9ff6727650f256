package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Repository persists weekly reports together with their grants
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WeeklyReport, error)
	FindByNumber(ctx context.Context, number string) (*WeeklyReport, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]WeeklyReport, error)
	FindByAuthor(ctx context.Context, author uuid.UUID, filter shared.Filter) ([]WeeklyReport, error)
	FindByWeek(ctx context.Context, weekStart time.Time) ([]WeeklyReport, error)
	// FindVisibleTo returns reports the principal authored or holds an
	// active grant on. Master-tier visibility is handled by the caller.
	FindVisibleTo(ctx context.Context, principal uuid.UUID, filter shared.Filter) ([]WeeklyReport, error)
	Save(ctx context.Context, r *WeeklyReport) error
	Delete(ctx context.Context, id uuid.UUID) error
}
