package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/approval"
	"github.com/tradeops/backend/internal/domain/expense"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements expense.Repository using GORM. Approval
// slots live in their own table so pending-approval queries can hit an index
// on the approver column.
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense request by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Request, error) {
	var model models.ExpenseRequestModel
	err := r.db.WithContext(ctx).Preload("Slots").Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByNumber finds an expense request by its document number
func (r *GormExpenseRepository) FindByNumber(ctx context.Context, number string) (*expense.Request, error) {
	var model models.ExpenseRequestModel
	err := r.db.WithContext(ctx).Preload("Slots").Where("number = ?", number).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindBySlotID finds the request owning the given approval slot
func (r *GormExpenseRepository) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*expense.Request, error) {
	var model models.ExpenseRequestModel
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("id = (?)", r.db.Model(&models.ApprovalSlotModel{}).
			Select("request_id").Where("id = ?", slotID)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByRequester returns requests raised by a principal
func (r *GormExpenseRepository) FindByRequester(ctx context.Context, requester uuid.UUID, filter shared.Filter) ([]expense.Request, error) {
	var requestModels []models.ExpenseRequestModel
	query := r.db.WithContext(ctx).Preload("Slots").
		Model(&models.ExpenseRequestModel{}).
		Where("requester = ?", requester)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyFilter(query, filter)
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(requestModels)
}

// FindPendingForApprover returns in-flight requests whose current step is
// waiting on the given approver.
func (r *GormExpenseRepository) FindPendingForApprover(ctx context.Context, approver uuid.UUID) ([]expense.Request, error) {
	var requestModels []models.ExpenseRequestModel
	err := r.db.WithContext(ctx).Preload("Slots").
		Joins("JOIN approval_slots ON approval_slots.request_id = expense_requests.id").
		Where("approval_slots.approver = ?", approver).
		Where("approval_slots.step_index = expense_requests.current_step").
		Where("approval_slots.result = ?", string(approval.SlotWaiting)).
		Where("expense_requests.status IN ?", []string{
			string(expense.StatusPending), string(expense.StatusInProgress),
		}).
		Order("expense_requests.created_at ASC").
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(requestModels)
}

// Save creates or updates an expense request and replaces its slot rows so
// decisions recorded on the domain chain land in the child table.
func (r *GormExpenseRepository) Save(ctx context.Context, req *expense.Request) error {
	model := models.ExpenseRequestModelFromDomain(req)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := model.Slots
		model.Slots = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", model.ID).
			Delete(&models.ApprovalSlotModel{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func toDomainRequests(requestModels []models.ExpenseRequestModel) ([]expense.Request, error) {
	requests := make([]expense.Request, len(requestModels))
	for i := range requestModels {
		req, err := requestModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		requests[i] = *req
	}
	return requests, nil
}

// Ensure GormExpenseRepository implements expense.Repository
var _ expense.Repository = (*GormExpenseRepository)(nil)
