package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByCode(ctx context.Context, code string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
