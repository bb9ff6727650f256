package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/workflow"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWorkflowRepository implements workflow.Repository using GORM
type GormWorkflowRepository struct {
	db *gorm.DB
}

// NewGormWorkflowRepository creates a new GormWorkflowRepository
func NewGormWorkflowRepository(db *gorm.DB) *GormWorkflowRepository {
	return &GormWorkflowRepository{db: db}
}

// FindByID finds a workflow by ID
func (r *GormWorkflowRepository) FindByID(ctx context.Context, id uuid.UUID) (*workflow.Workflow, error) {
	var model models.WorkflowModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByNumber finds a workflow by its document number
func (r *GormWorkflowRepository) FindByNumber(ctx context.Context, number string) (*workflow.Workflow, error) {
	var model models.WorkflowModel
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindActiveByQuotation finds the active workflow spawned from a quotation,
// if one exists.
func (r *GormWorkflowRepository) FindActiveByQuotation(ctx context.Context, quotationID uuid.UUID) (*workflow.Workflow, error) {
	var model models.WorkflowModel
	err := r.db.WithContext(ctx).
		Where("quotation_id = ? AND status = ?", quotationID, string(workflow.StatusActive)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByStage returns workflows currently sitting at a stage
func (r *GormWorkflowRepository) FindByStage(ctx context.Context, stage workflow.Stage) ([]workflow.Workflow, error) {
	var workflowModels []models.WorkflowModel
	err := r.db.WithContext(ctx).
		Where("current_stage = ?", string(stage)).
		Order("created_at ASC").
		Find(&workflowModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainWorkflows(workflowModels)
}

// FindAll returns workflows matching the filter
func (r *GormWorkflowRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workflow.Workflow, error) {
	var workflowModels []models.WorkflowModel
	query := r.db.WithContext(ctx).Model(&models.WorkflowModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if stage, ok := filter.Filters["stage"]; ok {
		query = query.Where("current_stage = ?", stage)
	}
	query = applyFilter(query, filter)
	if err := query.Find(&workflowModels).Error; err != nil {
		return nil, err
	}
	return toDomainWorkflows(workflowModels)
}

// CountByStatus returns the number of workflows in a status
func (r *GormWorkflowRepository) CountByStatus(ctx context.Context, status workflow.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WorkflowModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a workflow without a version check
func (r *GormWorkflowRepository) Save(ctx context.Context, w *workflow.Workflow) error {
	model, err := models.WorkflowModelFromDomain(w)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates a workflow guarded by its version column. Concurrent
// stage advances race on the same row; the loser sees a stale version and
// gets a conflict instead of silently overwriting.
func (r *GormWorkflowRepository) SaveWithLock(ctx context.Context, w *workflow.Workflow) error {
	model, err := models.WorkflowModelFromDomain(w)
	if err != nil {
		return err
	}

	currentVersion := model.Version
	model.Version = currentVersion + 1

	result := r.db.WithContext(ctx).Model(&models.WorkflowModel{}).
		Where("id = ? AND version = ?", model.ID, currentVersion).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.WorkflowModel{}).
			Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.db.WithContext(ctx).Create(model).Error
	}

	w.IncrementVersion()
	return nil
}

func toDomainWorkflows(workflowModels []models.WorkflowModel) ([]workflow.Workflow, error) {
	workflows := make([]workflow.Workflow, len(workflowModels))
	for i := range workflowModels {
		w, err := workflowModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		workflows[i] = *w
	}
	return workflows, nil
}

// Ensure GormWorkflowRepository implements workflow.Repository
var _ workflow.Repository = (*GormWorkflowRepository)(nil)
