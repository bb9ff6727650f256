package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/approval"
	"github.com/tradeops/backend/internal/domain/expense"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// ApprovalSlotModel is one sealed slot of an expense request's approval
// chain. Slots get their own table so "whose turn is it" queries can hit an
// index instead of unpacking json.
type ApprovalSlotModel struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key"`
	RequestID uuid.UUID           `gorm:"type:uuid;not null;index"`
	StepIndex int                 `gorm:"not null"`
	Approver  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Required  bool                `gorm:"not null"`
	Result    approval.SlotResult `gorm:"type:varchar(20);not null"`
	Comment   string              `gorm:"type:varchar(500)"`
	DecidedAt *time.Time
}

// TableName returns the table name for GORM
func (ApprovalSlotModel) TableName() string {
	return "approval_slots"
}

// ExpenseRequestModel is the persistence model for the expense Request
// aggregate. The chain's slots are stored as child rows and re-sealed on load.
type ExpenseRequestModel struct {
	AggregateModel
	Number       string               `gorm:"type:varchar(20);not null;uniqueIndex"`
	Requester    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title        string               `gorm:"type:varchar(200);not null"`
	Description  string               `gorm:"type:text"`
	Category     expense.Category     `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null"`
	ExpectedDate time.Time            `gorm:"not null"`
	Status       expense.Status       `gorm:"type:varchar(20);not null;index"`
	TotalSteps   int                  `gorm:"not null"`
	CurrentStep  int                  `gorm:"not null"`
	ChainState   approval.ChainState  `gorm:"type:varchar(20);not null"`
	CompletedAt  *time.Time
	Slots        []ApprovalSlotModel `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ExpenseRequestModel) TableName() string {
	return "expense_requests"
}

// ToDomain converts the persistence model to a domain Request
func (m *ExpenseRequestModel) ToDomain() (*expense.Request, error) {
	money, err := valueobject.NewMoney(m.Amount, m.Currency)
	if err != nil {
		return nil, err
	}

	slots := make([]approval.Slot, len(m.Slots))
	for i, s := range m.Slots {
		slots[i] = approval.Slot{
			ID:        s.ID,
			StepIndex: s.StepIndex,
			Approver:  s.Approver,
			Required:  s.Required,
			Result:    s.Result,
			Comment:   s.Comment,
			DecidedAt: s.DecidedAt,
		}
	}

	return &expense.Request{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		Requester:         m.Requester,
		Title:             m.Title,
		Description:       m.Description,
		Category:          m.Category,
		Amount:            money,
		ExpectedDate:      m.ExpectedDate,
		Status:            m.Status,
		TotalSteps:        m.TotalSteps,
		Chain: approval.Chain{
			Slots:       slots,
			CurrentStep: m.CurrentStep,
			State:       m.ChainState,
		},
		CompletedAt: m.CompletedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain Request
func (m *ExpenseRequestModel) FromDomain(r *expense.Request) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Number = r.Number
	m.Requester = r.Requester
	m.Title = r.Title
	m.Description = r.Description
	m.Category = r.Category
	m.Amount = r.Amount.Amount()
	m.Currency = r.Amount.Currency()
	m.ExpectedDate = r.ExpectedDate
	m.Status = r.Status
	m.TotalSteps = r.TotalSteps
	m.CurrentStep = r.Chain.CurrentStep
	m.ChainState = r.Chain.State
	m.CompletedAt = r.CompletedAt

	m.Slots = make([]ApprovalSlotModel, len(r.Chain.Slots))
	for i, s := range r.Chain.Slots {
		m.Slots[i] = ApprovalSlotModel{
			ID:        s.ID,
			RequestID: r.ID,
			StepIndex: s.StepIndex,
			Approver:  s.Approver,
			Required:  s.Required,
			Result:    s.Result,
			Comment:   s.Comment,
			DecidedAt: s.DecidedAt,
		}
	}
}

// ExpenseRequestModelFromDomain creates a persistence model from a domain Request
func ExpenseRequestModelFromDomain(r *expense.Request) *ExpenseRequestModel {
	m := &ExpenseRequestModel{}
	m.FromDomain(r)
	return m
}
