package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/numbering"
)

// NumberAllocationModel records every document number ever handed out. The
// unique index on the value column is what makes allocation collision-safe;
// retired numbers stay in the table so they are never reused.
type NumberAllocationModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key"`
	Kind        numbering.DocumentKind `gorm:"type:varchar(5);not null;index:idx_alloc_segment,priority:1"`
	DateSegment string                 `gorm:"type:varchar(20);not null;index:idx_alloc_segment,priority:2"`
	Sequence    int                    `gorm:"not null"`
	Value       string                 `gorm:"type:varchar(30);not null;uniqueIndex"`
	CreatedAt   time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberAllocationModel) TableName() string {
	return "number_allocations"
}
