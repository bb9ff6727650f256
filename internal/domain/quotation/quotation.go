package quotation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle status of a quotation
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The only transitions are draft->submitted->(approved|rejected).
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusSubmitted
	case StatusSubmitted:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved, StatusRejected:
		return false // Terminal states
	}
	return false
}

// LineItem represents one line of a quotation
type LineItem struct {
	ID        uuid.UUID
	Product   string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Currency  valueobject.Currency
	Amount    decimal.Decimal // Quantity * UnitPrice
}

// NewLineItem creates a new line item
func NewLineItem(product string, quantity, unitPrice decimal.Decimal, currency valueobject.Currency) (*LineItem, error) {
	if product == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency: "+string(currency))
	}

	return &LineItem{
		ID:        uuid.New(),
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Currency:  currency,
		Amount:    quantity.Mul(unitPrice),
	}, nil
}

// Quotation represents a quotation aggregate root.
// Once approved the document is immutable: line items are frozen and the FX
// rates used per currency are snapshotted into the document.
type Quotation struct {
	shared.BaseAggregateRoot
	Number           string // Q<YYYYMMDD><NNNN>
	CustomerRef      uuid.UUID
	CustomerName     string
	Date             time.Time
	ValidUntil       time.Time
	Items            []LineItem
	TotalsByCurrency map[valueobject.Currency]decimal.Decimal
	FXSnapshot       map[valueobject.Currency]decimal.Decimal // USD->currency rates frozen at approval
	TotalUSD         decimal.Decimal                          // computed through FXSnapshot at approval
	Status           Status
	SubmittedAt      *time.Time
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	RejectReason     string
}

// NewQuotation creates a new draft quotation
func NewQuotation(number string, customerRef uuid.UUID, customerName string, date, validUntil time.Time) (*Quotation, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quotation number cannot be empty")
	}
	if customerRef == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer reference cannot be empty")
	}
	if validUntil.Before(date) {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Valid-until date cannot precede the quotation date")
	}

	q := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerRef:       customerRef,
		CustomerName:      customerName,
		Date:              date,
		ValidUntil:        validUntil,
		Items:             make([]LineItem, 0),
		TotalsByCurrency:  make(map[valueobject.Currency]decimal.Decimal),
		Status:            StatusDraft,
	}
	q.AddDomainEvent(NewQuotationCreatedEvent(q))
	return q, nil
}

// AddItem adds a new line item. Only allowed in DRAFT status.
func (q *Quotation) AddItem(product string, quantity, unitPrice decimal.Decimal, currency valueobject.Currency) (*LineItem, error) {
	if q.Status != StatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft quotation")
	}

	item, err := NewLineItem(product, quantity, unitPrice, currency)
	if err != nil {
		return nil, err
	}

	q.Items = append(q.Items, *item)
	q.recalculateTotals()
	q.UpdatedAt = time.Now()
	return item, nil
}

// RemoveItem removes a line item. Only allowed in DRAFT status.
func (q *Quotation) RemoveItem(itemID uuid.UUID) error {
	if q.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft quotation")
	}

	for idx, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			q.recalculateTotals()
			q.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Quotation item not found")
}

// Submit transitions the quotation from DRAFT to SUBMITTED.
// Requires at least one line item.
func (q *Quotation) Submit() error {
	if !q.Status.CanTransitionTo(StatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit quotation in %s status", q.Status))
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit quotation without items")
	}

	now := time.Now()
	q.Status = StatusSubmitted
	q.SubmittedAt = &now
	q.UpdatedAt = now
	return nil
}

// Approve transitions the quotation from SUBMITTED to APPROVED.
// The supplied fxSnapshot must carry a USD->currency rate for every non-USD
// currency appearing in the line items; totals are recomputed through it and
// frozen together with the items.
func (q *Quotation) Approve(fxSnapshot map[valueobject.Currency]decimal.Decimal) error {
	if !q.Status.CanTransitionTo(StatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve quotation in %s status", q.Status))
	}

	q.recalculateTotals()

	totalUSD := decimal.Zero
	snapshot := make(map[valueobject.Currency]decimal.Decimal)
	for currency, total := range q.TotalsByCurrency {
		if currency == valueobject.BaseCurrency {
			totalUSD = totalUSD.Add(total)
			continue
		}
		rate, ok := fxSnapshot[currency]
		if !ok || rate.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("NO_RATE", "No reference rate supplied for "+string(currency))
		}
		snapshot[currency] = rate
		totalUSD = totalUSD.Add(total.Div(rate))
	}

	now := time.Now()
	q.FXSnapshot = snapshot
	q.TotalUSD = totalUSD.Round(2)
	q.Status = StatusApproved
	q.ApprovedAt = &now
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuotationApprovedEvent(q))
	return nil
}

// Reject transitions the quotation from SUBMITTED to REJECTED. Terminal.
func (q *Quotation) Reject(reason string) error {
	if !q.Status.CanTransitionTo(StatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quotation in %s status", q.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason is required")
	}

	now := time.Now()
	q.Status = StatusRejected
	q.RejectedAt = &now
	q.RejectReason = reason
	q.UpdatedAt = now
	return nil
}

// recalculateTotals recomputes the per-currency totals from the line items
func (q *Quotation) recalculateTotals() {
	totals := make(map[valueobject.Currency]decimal.Decimal)
	for _, item := range q.Items {
		totals[item.Currency] = totals[item.Currency].Add(item.Amount)
	}
	q.TotalsByCurrency = totals
}

// IsApproved returns true if the quotation is approved
func (q *Quotation) IsApproved() bool {
	return q.Status == StatusApproved
}

// IsDraft returns true if the quotation is in draft status
func (q *Quotation) IsDraft() bool {
	return q.Status == StatusDraft
}

// IsTerminal returns true if the quotation is approved or rejected
func (q *Quotation) IsTerminal() bool {
	return q.Status == StatusApproved || q.Status == StatusRejected
}

// CanDelete returns true if the quotation may be structurally deleted.
// Only draft documents can be deleted.
func (q *Quotation) CanDelete() bool {
	return q.IsDraft()
}

// Currencies returns the distinct currencies appearing in the line items
func (q *Quotation) Currencies() []valueobject.Currency {
	seen := make(map[valueobject.Currency]bool)
	var currencies []valueobject.Currency
	for _, item := range q.Items {
		if !seen[item.Currency] {
			seen[item.Currency] = true
			currencies = append(currencies, item.Currency)
		}
	}
	return currencies
}

// ItemCount returns the number of line items
func (q *Quotation) ItemCount() int {
	return len(q.Items)
}
