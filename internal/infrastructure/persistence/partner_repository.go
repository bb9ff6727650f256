package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/partner"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a customer by code
func (r *GormCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	var model models.CustomerModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customerModels []models.CustomerModel
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *partner.Customer) error {
	model := models.CustomerModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CustomerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var model models.SupplierModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a supplier by code
func (r *GormSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	var model models.SupplierModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var supplierModels []models.SupplierModel
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&models.SupplierModel{}), filter)
	if err := query.Find(&supplierModels).Error; err != nil {
		return nil, err
	}
	suppliers := make([]partner.Supplier, len(supplierModels))
	for i := range supplierModels {
		suppliers[i] = *supplierModels[i].ToDomain()
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	model := models.SupplierModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SupplierModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func applyPartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if country, ok := filter.Filters["country"]; ok {
		query = query.Where("country = ?", country)
	}
	return applyFilter(query, filter)
}

// Ensure the repositories implement their interfaces
var (
	_ partner.CustomerRepository = (*GormCustomerRepository)(nil)
	_ partner.SupplierRepository = (*GormSupplierRepository)(nil)
)
