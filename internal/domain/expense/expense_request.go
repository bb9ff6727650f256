package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/approval"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// Category classifies an expense request
type Category string

const (
	CategoryTravel        Category = "TRAVEL"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategorySupplies      Category = "SUPPLIES"
	CategoryEducation     Category = "EDUCATION"
	CategoryWelfare       Category = "WELFARE"
	CategoryOther         Category = "OTHER"
)

// IsValid checks if the category is a known Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryTravel, CategoryEntertainment, CategorySupplies,
		CategoryEducation, CategoryWelfare, CategoryOther:
		return true
	}
	return false
}

// Status represents the lifecycle status of an expense request
type Status string

const (
	StatusPending    Status = "PENDING"     // sealed, no decision yet
	StatusInProgress Status = "IN_PROGRESS" // at least one decision recorded
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusCompleted  Status = "COMPLETED" // paid out
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Request is an expense request aggregate root. Its approval chain is sealed
// from the caller-supplied approver list at creation; TotalSteps never
// changes afterwards.
type Request struct {
	shared.BaseAggregateRoot
	Number       string // EXP<YYYYMMDDhhmmss>
	Requester    uuid.UUID
	Title        string
	Description  string
	Category     Category
	Amount       valueobject.Money
	ExpectedDate time.Time
	Status       Status
	TotalSteps   int
	Chain        approval.Chain
	CompletedAt  *time.Time
}

// NewRequest creates an expense request and seals its approval chain
func NewRequest(number string, requester uuid.UUID, title, description string, category Category, amount decimal.Decimal, currency valueobject.Currency, expectedDate time.Time, approvers []approval.SlotSpec) (*Request, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Expense request number cannot be empty")
	}
	if requester == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category: "+string(category))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	money, err := valueobject.NewMoney(amount, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	chain, err := approval.NewChain(approvers)
	if err != nil {
		return nil, err
	}

	r := &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Requester:         requester,
		Title:             title,
		Description:       description,
		Category:          category,
		Amount:            money,
		ExpectedDate:      expectedDate,
		Status:            StatusPending,
		TotalSteps:        chain.TotalSteps(),
		Chain:             *chain,
	}
	r.AddDomainEvent(NewRequestCreatedEvent(r))
	return r, nil
}

// CurrentStep returns the 1-based step whose turn it is
func (r *Request) CurrentStep() int {
	return r.Chain.CurrentStep
}

// Approve records an approval on the given slot and syncs the request status
func (r *Request) Approve(slotID, caller uuid.UUID, comment string) error {
	if r.isClosed() {
		return shared.ErrAlreadyDecided
	}
	if err := r.Chain.Approve(slotID, caller, comment); err != nil {
		return err
	}
	r.syncStatus()
	return nil
}

// Reject records a rejection on the given slot and syncs the request status
func (r *Request) Reject(slotID, caller uuid.UUID, comment string) error {
	if r.isClosed() {
		return shared.ErrAlreadyDecided
	}
	if err := r.Chain.Reject(slotID, caller, comment); err != nil {
		return err
	}
	r.syncStatus()
	return nil
}

// Skip passes over a non-required slot. The caller must already have been
// authorized as an administrator.
func (r *Request) Skip(slotID uuid.UUID, comment string) error {
	if r.isClosed() {
		return shared.ErrAlreadyDecided
	}
	if err := r.Chain.Skip(slotID, comment); err != nil {
		return err
	}
	r.syncStatus()
	return nil
}

// Complete marks an approved request as paid out
func (r *Request) Complete() error {
	if r.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved requests can be completed")
	}
	now := time.Now()
	r.Status = StatusCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}

// PendingFor reports whether it is currently the given approver's turn
func (r *Request) PendingFor(approver uuid.UUID) bool {
	return (r.Status == StatusPending || r.Status == StatusInProgress) && r.Chain.PendingFor(approver)
}

func (r *Request) isClosed() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected || r.Status == StatusCompleted
}

// syncStatus mirrors the chain state onto the request status
func (r *Request) syncStatus() {
	r.UpdatedAt = time.Now()
	switch r.Chain.State {
	case approval.ChainApproved:
		r.Status = StatusApproved
		r.AddDomainEvent(NewRequestApprovedEvent(r))
	case approval.ChainRejected:
		r.Status = StatusRejected
		r.AddDomainEvent(NewRequestRejectedEvent(r))
	default:
		r.Status = StatusInProgress
	}
}
