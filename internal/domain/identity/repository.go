package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Repository persists principals
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Principal, error)
	FindByUsername(ctx context.Context, username string) (*Principal, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Principal, error)
	FindByTier(ctx context.Context, tier Tier) ([]Principal, error)
	Save(ctx context.Context, p *Principal) error
}
