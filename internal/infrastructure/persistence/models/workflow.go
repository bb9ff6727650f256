package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/workflow"
)

// workflowHistoryJSON is the wire shape of one history entry
type workflowHistoryJSON struct {
	Stage     string     `json:"stage"`
	EnteredAt time.Time  `json:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at,omitempty"`
	Actor     uuid.UUID  `json:"actor"`
}

// WorkflowModel is the persistence model for the Workflow aggregate. The
// append-only stage history lives in a jsonb column; it is never queried by
// field.
type WorkflowModel struct {
	AggregateModel
	Number       string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	QuotationID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerRef  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName string          `gorm:"type:varchar(200)"`
	AmountUSD    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CurrentStage workflow.Stage  `gorm:"type:varchar(30);not null;index"`
	Status       workflow.Status `gorm:"type:varchar(20);not null;index"`
	History      string          `gorm:"type:jsonb;not null;default:'[]'"`
	CancelReason string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (WorkflowModel) TableName() string {
	return "workflows"
}

// ToDomain converts the persistence model to a domain Workflow
func (m *WorkflowModel) ToDomain() (*workflow.Workflow, error) {
	var rawHistory []workflowHistoryJSON
	if m.History != "" {
		if err := json.Unmarshal([]byte(m.History), &rawHistory); err != nil {
			return nil, err
		}
	}
	history := make([]workflow.HistoryEntry, len(rawHistory))
	for i, raw := range rawHistory {
		history[i] = workflow.HistoryEntry{
			Stage:     workflow.Stage(raw.Stage),
			EnteredAt: raw.EnteredAt,
			ExitedAt:  raw.ExitedAt,
			Actor:     raw.Actor,
		}
	}

	return &workflow.Workflow{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		QuotationID:       m.QuotationID,
		CustomerRef:       m.CustomerRef,
		CustomerName:      m.CustomerName,
		AmountUSD:         m.AmountUSD,
		CurrentStage:      m.CurrentStage,
		Status:            m.Status,
		History:           history,
		CancelReason:      m.CancelReason,
	}, nil
}

// FromDomain populates the persistence model from a domain Workflow
func (m *WorkflowModel) FromDomain(w *workflow.Workflow) error {
	rawHistory := make([]workflowHistoryJSON, len(w.History))
	for i, entry := range w.History {
		rawHistory[i] = workflowHistoryJSON{
			Stage:     string(entry.Stage),
			EnteredAt: entry.EnteredAt,
			ExitedAt:  entry.ExitedAt,
			Actor:     entry.Actor,
		}
	}
	historyJSON, err := json.Marshal(rawHistory)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.Number = w.Number
	m.QuotationID = w.QuotationID
	m.CustomerRef = w.CustomerRef
	m.CustomerName = w.CustomerName
	m.AmountUSD = w.AmountUSD
	m.CurrentStage = w.CurrentStage
	m.Status = w.Status
	m.History = string(historyJSON)
	m.CancelReason = w.CancelReason
	return nil
}

// WorkflowModelFromDomain creates a persistence model from a domain Workflow
func WorkflowModelFromDomain(w *workflow.Workflow) (*WorkflowModel, error) {
	m := &WorkflowModel{}
	if err := m.FromDomain(w); err != nil {
		return nil, err
	}
	return m, nil
}
