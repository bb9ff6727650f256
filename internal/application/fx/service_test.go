package fx

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/fx"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// MockRateRepository is a mock implementation of fx.Repository
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindByPeriod(ctx context.Context, period valueobject.Period, target valueobject.Currency) (*fx.ReferenceRate, error) {
	args := m.Called(ctx, period, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fx.ReferenceRate), args.Error(1)
}

func (m *MockRateRepository) FindByTarget(ctx context.Context, target valueobject.Currency) ([]fx.ReferenceRate, error) {
	args := m.Called(ctx, target)
	return args.Get(0).([]fx.ReferenceRate), args.Error(1)
}

func (m *MockRateRepository) FindByTargetBetween(ctx context.Context, target valueobject.Currency, from, to valueobject.Period) ([]fx.ReferenceRate, error) {
	args := m.Called(ctx, target, from, to)
	return args.Get(0).([]fx.ReferenceRate), args.Error(1)
}

func (m *MockRateRepository) Save(ctx context.Context, rate *fx.ReferenceRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func newTestService(repo *MockRateRepository) *Service {
	averages := map[valueobject.Currency]decimal.Decimal{
		valueobject.KRW: decimal.NewFromInt(1000),
	}
	return NewService(repo, nil, averages, zap.NewNop())
}

func quarterlyPeriod(t *testing.T, year, quarter int) valueobject.Period {
	t.Helper()
	p, err := valueobject.NewQuarterlyPeriod(year, quarter)
	require.NoError(t, err)
	return p
}

func TestService_PutQuarterly_New(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	period := quarterlyPeriod(t, 2025, 2)

	repo.On("FindByPeriod", mock.Anything, period, valueobject.KRW).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*fx.ReferenceRate")).Return(nil)

	resp, err := svc.PutQuarterly(context.Background(), PutQuarterlyRateRequest{
		Year: 2025, Quarter: 2, Target: "KRW",
		Rate: decimal.NewFromInt(1020), SourceTag: "BOK-avg", RecordedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025Q2", resp.Period)
	assert.True(t, resp.Rate.Equal(decimal.NewFromInt(1020)))
	repo.AssertExpectations(t)
}

func TestService_PutQuarterly_OutOfBand(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	period := quarterlyPeriod(t, 2025, 2)

	repo.On("FindByPeriod", mock.Anything, period, valueobject.KRW).Return(nil, shared.ErrNotFound)

	// 1060 deviates 6% from the configured average of 1000
	_, err := svc.PutQuarterly(context.Background(), PutQuarterlyRateRequest{
		Year: 2025, Quarter: 2, Target: "KRW",
		Rate: decimal.NewFromInt(1060), RecordedBy: uuid.New(),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RATE_OUT_OF_BAND", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_PutQuarterly_RevisesExisting(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	period := quarterlyPeriod(t, 2025, 2)

	existing, err := fx.NewQuarterlyRate(2025, 2, valueobject.KRW,
		decimal.NewFromInt(1000), decimal.NewFromInt(1000), "initial", uuid.New())
	require.NoError(t, err)

	repo.On("FindByPeriod", mock.Anything, period, valueobject.KRW).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	resp, err := svc.PutQuarterly(context.Background(), PutQuarterlyRateRequest{
		Year: 2025, Quarter: 2, Target: "KRW",
		Rate: decimal.NewFromInt(1030), SourceTag: "revised", RecordedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ID)
	assert.True(t, existing.Rate.Equal(decimal.NewFromInt(1030)))
	repo.AssertExpectations(t)
}

func TestService_GetFor_QuarterlyBeatsYearly(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	quarterly, err := fx.NewQuarterlyRate(2025, 2, valueobject.VND,
		decimal.NewFromInt(26000), decimal.Zero, "", uuid.New())
	require.NoError(t, err)

	repo.On("FindByPeriod", mock.Anything, valueobject.QuarterOf(date), valueobject.VND).Return(quarterly, nil)

	resp, err := svc.GetFor(context.Background(), date, valueobject.VND)
	require.NoError(t, err)
	assert.Equal(t, "2025Q2", resp.Period)
	assert.True(t, resp.Rate.Equal(decimal.NewFromInt(26000)))
	// The yearly bucket is never consulted
	repo.AssertNumberOfCalls(t, "FindByPeriod", 1)
}

func TestService_GetFor_FallsBackToYearly(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	yearly, err := fx.NewYearlyRate(2025, valueobject.VND, decimal.NewFromInt(25500), "", uuid.New())
	require.NoError(t, err)

	repo.On("FindByPeriod", mock.Anything, valueobject.QuarterOf(date), valueobject.VND).Return(nil, shared.ErrNotFound)
	repo.On("FindByPeriod", mock.Anything, valueobject.YearOf(date), valueobject.VND).Return(yearly, nil)

	resp, err := svc.GetFor(context.Background(), date, valueobject.VND)
	require.NoError(t, err)
	assert.Equal(t, "2025", resp.Period)
	assert.True(t, resp.Rate.Equal(decimal.NewFromInt(25500)))
}

func TestService_GetFor_NoRate(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	repo.On("FindByPeriod", mock.Anything, mock.Anything, valueobject.THB).Return(nil, shared.ErrNotFound)

	_, err := svc.GetFor(context.Background(), date, valueobject.THB)
	assert.ErrorIs(t, err, shared.ErrNoRate)
}

func TestService_GetFor_RejectsBaseCurrency(t *testing.T) {
	svc := newTestService(new(MockRateRepository))
	_, err := svc.GetFor(context.Background(), time.Now(), valueobject.USD)
	assert.Error(t, err)
}

func TestService_SnapshotFor(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	krw, err := fx.NewQuarterlyRate(2025, 2, valueobject.KRW,
		decimal.NewFromInt(1000), decimal.Zero, "", uuid.New())
	require.NoError(t, err)

	repo.On("FindByPeriod", mock.Anything, valueobject.QuarterOf(date), valueobject.KRW).Return(krw, nil)
	repo.On("FindByPeriod", mock.Anything, mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	snapshot, err := svc.SnapshotFor(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.True(t, snapshot[valueobject.KRW].Equal(decimal.NewFromInt(1000)))
}

func TestService_Stats(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)

	r1, err := fx.NewYearlyRate(2024, valueobject.KRW, decimal.NewFromInt(950), "", uuid.New())
	require.NoError(t, err)
	r2, err := fx.NewQuarterlyRate(2025, 1, valueobject.KRW, decimal.NewFromInt(1050), decimal.NewFromInt(1000), "", uuid.New())
	require.NoError(t, err)

	repo.On("FindByTarget", mock.Anything, valueobject.KRW).Return([]fx.ReferenceRate{*r1, *r2}, nil)

	stats, err := svc.Stats(context.Background(), valueobject.KRW)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.N)
	assert.True(t, stats.Current.Equal(decimal.NewFromInt(1050)))
	assert.True(t, stats.Min.Equal(decimal.NewFromInt(950)))
	assert.True(t, stats.Max.Equal(decimal.NewFromInt(1050)))
	assert.True(t, stats.Mean.Equal(decimal.NewFromInt(1000)))
}
