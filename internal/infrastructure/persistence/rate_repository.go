package persistence

import (
	"context"
	"errors"

	"github.com/tradeops/backend/internal/domain/fx"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRateRepository implements fx.Repository using GORM
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindByPeriod finds the rate bucket for one (period, target) pair
func (r *GormRateRepository) FindByPeriod(ctx context.Context, period valueobject.Period, target valueobject.Currency) (*fx.ReferenceRate, error) {
	var model models.ReferenceRateModel
	err := r.db.WithContext(ctx).
		Where("scope = ? AND year = ? AND quarter = ? AND target = ?",
			string(period.Scope()), period.Year(), period.Quarter(), target).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByTarget returns all buckets for a target currency ordered by period
func (r *GormRateRepository) FindByTarget(ctx context.Context, target valueobject.Currency) ([]fx.ReferenceRate, error) {
	var rateModels []models.ReferenceRateModel
	err := r.db.WithContext(ctx).
		Where("target = ?", target).
		Order("year ASC, quarter ASC").
		Find(&rateModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainRates(rateModels)
}

// FindByTargetBetween returns buckets for a target within [from, to]
func (r *GormRateRepository) FindByTargetBetween(ctx context.Context, target valueobject.Currency, from, to valueobject.Period) ([]fx.ReferenceRate, error) {
	var rateModels []models.ReferenceRateModel
	err := r.db.WithContext(ctx).
		Where("target = ?", target).
		Where("(year > ? OR (year = ? AND quarter >= ?))", from.Year(), from.Year(), from.Quarter()).
		Where("(year < ? OR (year = ? AND quarter <= ?))", to.Year(), to.Year(), to.Quarter()).
		Order("year ASC, quarter ASC").
		Find(&rateModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainRates(rateModels)
}

// Save creates or updates a rate bucket
func (r *GormRateRepository) Save(ctx context.Context, rate *fx.ReferenceRate) error {
	model := models.ReferenceRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainRates(rateModels []models.ReferenceRateModel) ([]fx.ReferenceRate, error) {
	rates := make([]fx.ReferenceRate, len(rateModels))
	for i := range rateModels {
		rate, err := rateModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		rates[i] = *rate
	}
	return rates, nil
}

// Ensure GormRateRepository implements fx.Repository
var _ fx.Repository = (*GormRateRepository)(nil)
