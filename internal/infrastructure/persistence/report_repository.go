package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/report"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository using GORM. Grants live
// in their own table so visibility queries can join on the grantee column.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// FindByID finds a weekly report by ID
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.WeeklyReport, error) {
	var model models.WeeklyReportModel
	err := r.db.WithContext(ctx).Preload("Grants").Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a weekly report by its document number
func (r *GormReportRepository) FindByNumber(ctx context.Context, number string) (*report.WeeklyReport, error) {
	var model models.WeeklyReportModel
	err := r.db.WithContext(ctx).Preload("Grants").Where("number = ?", number).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns reports matching the filter regardless of visibility
func (r *GormReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]report.WeeklyReport, error) {
	var reportModels []models.WeeklyReportModel
	query := r.applyReportFilter(r.db.WithContext(ctx).Preload("Grants").Model(&models.WeeklyReportModel{}), filter)
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}
	return toDomainReports(reportModels), nil
}

// FindByAuthor returns reports written by a principal
func (r *GormReportRepository) FindByAuthor(ctx context.Context, author uuid.UUID, filter shared.Filter) ([]report.WeeklyReport, error) {
	var reportModels []models.WeeklyReportModel
	query := r.db.WithContext(ctx).Preload("Grants").
		Model(&models.WeeklyReportModel{}).
		Where("author = ?", author)
	query = r.applyReportFilter(query, filter)
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}
	return toDomainReports(reportModels), nil
}

// FindByWeek returns reports covering the week starting at weekStart
func (r *GormReportRepository) FindByWeek(ctx context.Context, weekStart time.Time) ([]report.WeeklyReport, error) {
	var reportModels []models.WeeklyReportModel
	err := r.db.WithContext(ctx).Preload("Grants").
		Where("week_start = ?", weekStart).
		Order("created_at ASC").
		Find(&reportModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainReports(reportModels), nil
}

// FindVisibleTo returns reports the principal authored or holds an active
// grant on.
func (r *GormReportRepository) FindVisibleTo(ctx context.Context, principal uuid.UUID, filter shared.Filter) ([]report.WeeklyReport, error) {
	var reportModels []models.WeeklyReportModel
	granted := r.db.Model(&models.AccessGrantModel{}).
		Select("report_id").
		Where("grantee = ? AND active = ?", principal, true)
	query := r.db.WithContext(ctx).Preload("Grants").
		Model(&models.WeeklyReportModel{}).
		Where("author = ? OR id IN (?)", principal, granted)
	query = r.applyReportFilter(query, filter)
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}
	return toDomainReports(reportModels), nil
}

// Save creates or updates a report and replaces its grant rows
func (r *GormReportRepository) Save(ctx context.Context, rep *report.WeeklyReport) error {
	model := models.WeeklyReportModelFromDomain(rep)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		grants := model.Grants
		model.Grants = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", model.ID).
			Delete(&models.AccessGrantModel{}).Error; err != nil {
			return err
		}
		if len(grants) == 0 {
			return nil
		}
		return tx.Create(&grants).Error
	})
}

// Delete removes a report; its grants go with it
func (r *GormReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).
			Delete(&models.AccessGrantModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.WeeklyReportModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormReportRepository) applyReportFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR title LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return applyFilter(query, filter)
}

func toDomainReports(reportModels []models.WeeklyReportModel) []report.WeeklyReport {
	reports := make([]report.WeeklyReport, len(reportModels))
	for i := range reportModels {
		reports[i] = *reportModels[i].ToDomain()
	}
	return reports
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
