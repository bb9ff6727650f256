package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/quotation"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

// quotationItemJSON is the wire shape of one line item inside the items column
type quotationItemJSON struct {
	ID        uuid.UUID       `json:"id"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
}

// QuotationModel is the persistence model for the Quotation aggregate. Line
// items, per-currency totals and the frozen FX snapshot live in jsonb columns;
// they are always loaded and saved with the document.
type QuotationModel struct {
	AggregateModel
	Number       string           `gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerRef  uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName string           `gorm:"type:varchar(200)"`
	Date         time.Time        `gorm:"not null"`
	ValidUntil   time.Time        `gorm:"not null"`
	Items        string           `gorm:"type:jsonb;not null;default:'[]'"`
	Totals       string           `gorm:"type:jsonb;not null;default:'{}'"`
	FXSnapshot   string           `gorm:"type:jsonb"`
	TotalUSD     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Status       quotation.Status `gorm:"type:varchar(20);not null;index"`
	SubmittedAt  *time.Time
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	RejectReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation
func (m *QuotationModel) ToDomain() (*quotation.Quotation, error) {
	var rawItems []quotationItemJSON
	if m.Items != "" {
		if err := json.Unmarshal([]byte(m.Items), &rawItems); err != nil {
			return nil, err
		}
	}
	items := make([]quotation.LineItem, len(rawItems))
	for i, raw := range rawItems {
		items[i] = quotation.LineItem{
			ID:        raw.ID,
			Product:   raw.Product,
			Quantity:  raw.Quantity,
			UnitPrice: raw.UnitPrice,
			Currency:  valueobject.Currency(raw.Currency),
			Amount:    raw.Amount,
		}
	}

	totals, err := unmarshalCurrencyMap(m.Totals)
	if err != nil {
		return nil, err
	}
	snapshot, err := unmarshalCurrencyMap(m.FXSnapshot)
	if err != nil {
		return nil, err
	}

	return &quotation.Quotation{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		CustomerRef:       m.CustomerRef,
		CustomerName:      m.CustomerName,
		Date:              m.Date,
		ValidUntil:        m.ValidUntil,
		Items:             items,
		TotalsByCurrency:  totals,
		FXSnapshot:        snapshot,
		TotalUSD:          m.TotalUSD,
		Status:            m.Status,
		SubmittedAt:       m.SubmittedAt,
		ApprovedAt:        m.ApprovedAt,
		RejectedAt:        m.RejectedAt,
		RejectReason:      m.RejectReason,
	}, nil
}

// FromDomain populates the persistence model from a domain Quotation
func (m *QuotationModel) FromDomain(q *quotation.Quotation) error {
	rawItems := make([]quotationItemJSON, len(q.Items))
	for i, item := range q.Items {
		rawItems[i] = quotationItemJSON{
			ID:        item.ID,
			Product:   item.Product,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Currency:  string(item.Currency),
			Amount:    item.Amount,
		}
	}
	itemsJSON, err := json.Marshal(rawItems)
	if err != nil {
		return err
	}
	totalsJSON, err := marshalCurrencyMap(q.TotalsByCurrency)
	if err != nil {
		return err
	}
	snapshotJSON, err := marshalCurrencyMap(q.FXSnapshot)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.Number = q.Number
	m.CustomerRef = q.CustomerRef
	m.CustomerName = q.CustomerName
	m.Date = q.Date
	m.ValidUntil = q.ValidUntil
	m.Items = string(itemsJSON)
	m.Totals = totalsJSON
	m.FXSnapshot = snapshotJSON
	m.TotalUSD = q.TotalUSD
	m.Status = q.Status
	m.SubmittedAt = q.SubmittedAt
	m.ApprovedAt = q.ApprovedAt
	m.RejectedAt = q.RejectedAt
	m.RejectReason = q.RejectReason
	return nil
}

// QuotationModelFromDomain creates a persistence model from a domain Quotation
func QuotationModelFromDomain(q *quotation.Quotation) (*QuotationModel, error) {
	m := &QuotationModel{}
	if err := m.FromDomain(q); err != nil {
		return nil, err
	}
	return m, nil
}

func marshalCurrencyMap(in map[valueobject.Currency]decimal.Decimal) (string, error) {
	if in == nil {
		return "{}", nil
	}
	out := make(map[string]decimal.Decimal, len(in))
	for currency, value := range in {
		out[string(currency)] = value
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalCurrencyMap(raw string) (map[valueobject.Currency]decimal.Decimal, error) {
	out := make(map[valueobject.Currency]decimal.Decimal)
	if raw == "" {
		return out, nil
	}
	var in map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	for currency, value := range in {
		out[valueobject.Currency(currency)] = value
	}
	return out, nil
}
