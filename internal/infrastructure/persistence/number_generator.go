package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNumberGenerator implements numbering.Generator on the allocation table.
// The unique index on the value column is the arbiter: two racing allocations
// of the same number make one insert fail, and the loser retries with the
// next sequence.
type GormNumberGenerator struct {
	db *gorm.DB
}

// NewGormNumberGenerator creates a new GormNumberGenerator
func NewGormNumberGenerator(db *gorm.DB) *GormNumberGenerator {
	return &GormNumberGenerator{db: db}
}

// Next allocates the next unique number for the kind at the given time
func (g *GormNumberGenerator) Next(ctx context.Context, kind numbering.DocumentKind, at time.Time) (string, error) {
	if !kind.IsValid() {
		return "", shared.NewDomainError("INVALID_KIND", "Unknown document kind: "+string(kind))
	}

	for attempt := 0; attempt < numbering.MaxAttempts; attempt++ {
		var value string
		var err error
		if numbering.HasSequence(kind) {
			value, err = g.allocateSequenced(ctx, kind, at)
		} else {
			// Timestamp kinds collide only within the same second;
			// shifting the clock forward resolves the retry.
			value, err = g.allocateTimestamped(ctx, kind, at.Add(time.Duration(attempt)*time.Second))
		}
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
	}
	return "", shared.ErrIDCollision
}

func (g *GormNumberGenerator) allocateSequenced(ctx context.Context, kind numbering.DocumentKind, at time.Time) (string, error) {
	segment, err := numbering.DateSegment(kind, at)
	if err != nil {
		return "", err
	}

	var maxSequence int
	err = g.db.WithContext(ctx).Model(&models.NumberAllocationModel{}).
		Where("kind = ? AND date_segment = ?", string(kind), segment).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&maxSequence).Error
	if err != nil {
		return "", err
	}

	sequence := maxSequence + 1
	value, err := numbering.Format(kind, at, sequence)
	if err != nil {
		return "", err
	}
	return value, g.insert(ctx, kind, segment, sequence, value)
}

func (g *GormNumberGenerator) allocateTimestamped(ctx context.Context, kind numbering.DocumentKind, at time.Time) (string, error) {
	segment, err := numbering.DateSegment(kind, at)
	if err != nil {
		return "", err
	}
	value, err := numbering.Format(kind, at, 0)
	if err != nil {
		return "", err
	}
	return value, g.insert(ctx, kind, segment, 0, value)
}

func (g *GormNumberGenerator) insert(ctx context.Context, kind numbering.DocumentKind, segment string, sequence int, value string) error {
	allocation := models.NumberAllocationModel{
		ID:          uuid.New(),
		Kind:        kind,
		DateSegment: segment,
		Sequence:    sequence,
		Value:       value,
		CreatedAt:   time.Now(),
	}
	return g.db.WithContext(ctx).Create(&allocation).Error
}

// Ensure GormNumberGenerator implements numbering.Generator
var _ numbering.Generator = (*GormNumberGenerator)(nil)
