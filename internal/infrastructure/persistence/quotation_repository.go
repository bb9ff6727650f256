package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/quotation"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQuotationRepository implements quotation.Repository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation by ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	var model models.QuotationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByNumber finds a quotation by its document number
func (r *GormQuotationRepository) FindByNumber(ctx context.Context, number string) (*quotation.Quotation, error) {
	var model models.QuotationModel
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns quotations matching the filter
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quotation.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)
	if err := query.Find(&quotationModels).Error; err != nil {
		return nil, err
	}
	return toDomainQuotations(quotationModels)
}

// FindByStatus returns quotations in the given status
func (r *GormQuotationRepository) FindByStatus(ctx context.Context, status quotation.Status, filter shared.Filter) ([]quotation.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.db.WithContext(ctx).Model(&models.QuotationModel{}).Where("status = ?", string(status))
	query = applyFilter(query, filter)
	if err := query.Find(&quotationModels).Error; err != nil {
		return nil, err
	}
	return toDomainQuotations(quotationModels)
}

// Save creates or updates a quotation
func (r *GormQuotationRepository) Save(ctx context.Context, q *quotation.Quotation) error {
	model, err := models.QuotationModelFromDomain(q)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a quotation
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.QuotationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of quotations matching the filter
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyFilter(query, filter)
}

func (r *GormQuotationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customer, ok := filter.Filters["customer_ref"]; ok {
		query = query.Where("customer_ref = ?", customer)
	}
	return query
}

func toDomainQuotations(quotationModels []models.QuotationModel) ([]quotation.Quotation, error) {
	quotations := make([]quotation.Quotation, len(quotationModels))
	for i := range quotationModels {
		q, err := quotationModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		quotations[i] = *q
	}
	return quotations, nil
}

// Ensure GormQuotationRepository implements quotation.Repository
var _ quotation.Repository = (*GormQuotationRepository)(nil)
