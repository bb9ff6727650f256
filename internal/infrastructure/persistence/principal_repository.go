package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPrincipalRepository implements identity.Repository using GORM
type GormPrincipalRepository struct {
	db *gorm.DB
}

// NewGormPrincipalRepository creates a new GormPrincipalRepository
func NewGormPrincipalRepository(db *gorm.DB) *GormPrincipalRepository {
	return &GormPrincipalRepository{db: db}
}

// FindByID finds a principal by ID
func (r *GormPrincipalRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Principal, error) {
	var model models.PrincipalModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a principal by username
func (r *GormPrincipalRepository) FindByUsername(ctx context.Context, username string) (*identity.Principal, error) {
	var model models.PrincipalModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns principals matching the filter
func (r *GormPrincipalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Principal, error) {
	var principalModels []models.PrincipalModel
	query := r.db.WithContext(ctx).Model(&models.PrincipalModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR display_name LIKE ?", pattern, pattern)
	}
	if tier, ok := filter.Filters["tier"]; ok {
		query = query.Where("tier = ?", tier)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	query = applyFilter(query, filter)
	if err := query.Find(&principalModels).Error; err != nil {
		return nil, err
	}
	return toDomainPrincipals(principalModels), nil
}

// FindByTier returns all principals at a tier
func (r *GormPrincipalRepository) FindByTier(ctx context.Context, tier identity.Tier) ([]identity.Principal, error) {
	var principalModels []models.PrincipalModel
	err := r.db.WithContext(ctx).
		Where("tier = ?", string(tier)).
		Order("username ASC").
		Find(&principalModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainPrincipals(principalModels), nil
}

// Save creates or updates a principal
func (r *GormPrincipalRepository) Save(ctx context.Context, p *identity.Principal) error {
	model := models.PrincipalModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainPrincipals(principalModels []models.PrincipalModel) []identity.Principal {
	principals := make([]identity.Principal, len(principalModels))
	for i := range principalModels {
		principals[i] = *principalModels[i].ToDomain()
	}
	return principals
}

// Ensure GormPrincipalRepository implements identity.Repository
var _ identity.Repository = (*GormPrincipalRepository)(nil)
