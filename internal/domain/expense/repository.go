package expense

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Repository persists expense requests together with their chain snapshots
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindByNumber(ctx context.Context, number string) (*Request, error)
	FindBySlotID(ctx context.Context, slotID uuid.UUID) (*Request, error)
	FindByRequester(ctx context.Context, requester uuid.UUID, filter shared.Filter) ([]Request, error)
	FindPendingForApprover(ctx context.Context, approver uuid.UUID) ([]Request, error)
	Save(ctx context.Context, r *Request) error
}
