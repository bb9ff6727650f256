package fx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

func TestNewQuarterlyRate(t *testing.T) {
	recordedBy := uuid.New()
	avg := decimal.NewFromInt(26000)

	rate, err := NewQuarterlyRate(2025, 2, valueobject.VND, decimal.NewFromInt(26500), avg, "treasury", recordedBy)
	require.NoError(t, err)
	assert.Equal(t, 2025, rate.Period.Year())
	assert.Equal(t, 2, rate.Period.Quarter())
	assert.Equal(t, valueobject.VND, rate.Target)
	assert.Equal(t, recordedBy, rate.RecordedBy)
	assert.Len(t, rate.DomainEvents(), 1)
}

func TestNewQuarterlyRate_PlausibilityBand(t *testing.T) {
	avg := decimal.NewFromInt(1000)

	tests := []struct {
		name string
		rate int64
		ok   bool
	}{
		{"exactly at lower edge", 950, true},
		{"exactly at upper edge", 1050, true},
		{"just below lower edge", 949, false},
		{"just above upper edge", 1051, false},
		{"equal to average", 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuarterlyRate(2025, 1, valueobject.KRW, decimal.NewFromInt(tt.rate), avg, "", uuid.New())
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "RATE_OUT_OF_BAND", domainErr.Code)
			}
		})
	}
}

func TestNewQuarterlyRate_NoConfiguredAverage(t *testing.T) {
	// Without a configured average the band check is skipped
	_, err := NewQuarterlyRate(2025, 1, valueobject.KRW, decimal.NewFromInt(99999), decimal.Zero, "", uuid.New())
	assert.NoError(t, err)
}

func TestNewQuarterlyRate_Validation(t *testing.T) {
	_, err := NewQuarterlyRate(2025, 5, valueobject.KRW, decimal.NewFromInt(1300), decimal.Zero, "", uuid.New())
	assert.Error(t, err)

	_, err = NewQuarterlyRate(2025, 1, valueobject.KRW, decimal.Zero, decimal.Zero, "", uuid.New())
	assert.Error(t, err)

	_, err = NewQuarterlyRate(2025, 1, valueobject.Currency("EUR"), decimal.NewFromInt(1), decimal.Zero, "", uuid.New())
	assert.Error(t, err)

	// USD is the base; it cannot be a target
	_, err = NewQuarterlyRate(2025, 1, valueobject.USD, decimal.NewFromInt(1), decimal.Zero, "", uuid.New())
	assert.Error(t, err)
}

func TestNewYearlyRate(t *testing.T) {
	// Yearly entries are only bounded to be positive, no band check
	rate, err := NewYearlyRate(2025, valueobject.IDR, decimal.NewFromInt(17000), "management", uuid.New())
	require.NoError(t, err)
	assert.False(t, rate.Period.IsQuarterly())

	_, err = NewYearlyRate(2025, valueobject.IDR, decimal.NewFromInt(-1), "", uuid.New())
	assert.Error(t, err)
}

func TestReferenceRate_Revise(t *testing.T) {
	avg := decimal.NewFromInt(26000)
	rate, err := NewQuarterlyRate(2025, 2, valueobject.VND, decimal.NewFromInt(26000), avg, "treasury", uuid.New())
	require.NoError(t, err)
	originalID := rate.ID

	newActor := uuid.New()
	require.NoError(t, rate.Revise(decimal.NewFromInt(26500), avg, "revised", newActor))
	assert.Equal(t, originalID, rate.ID)
	assert.True(t, rate.Rate.Equal(decimal.NewFromInt(26500)))
	assert.Equal(t, newActor, rate.RecordedBy)

	err = rate.Revise(decimal.NewFromInt(30000), avg, "", newActor)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RATE_OUT_OF_BAND", domainErr.Code)
}

func TestComputeStats(t *testing.T) {
	mk := func(q int, rate int64) ReferenceRate {
		r, err := NewQuarterlyRate(2025, q, valueobject.THB, decimal.NewFromInt(rate), decimal.Zero, "", uuid.New())
		require.NoError(t, err)
		return *r
	}

	stats := ComputeStats([]ReferenceRate{mk(1, 34), mk(2, 36), mk(3, 35)})
	assert.Equal(t, 3, stats.N)
	assert.True(t, stats.Current.Equal(decimal.NewFromInt(35)))
	assert.True(t, stats.Min.Equal(decimal.NewFromInt(34)))
	assert.True(t, stats.Max.Equal(decimal.NewFromInt(36)))
	assert.True(t, stats.Mean.Equal(decimal.NewFromInt(35)))
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.N)
	assert.True(t, stats.Current.IsZero())
}
