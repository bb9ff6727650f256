package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/report"
	"github.com/tradeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.WeeklyReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.WeeklyReport), args.Error(1)
}

func (m *MockReportRepository) FindByNumber(ctx context.Context, number string) (*report.WeeklyReport, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.WeeklyReport), args.Error(1)
}

func (m *MockReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]report.WeeklyReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.WeeklyReport), args.Error(1)
}

func (m *MockReportRepository) FindByAuthor(ctx context.Context, author uuid.UUID, filter shared.Filter) ([]report.WeeklyReport, error) {
	args := m.Called(ctx, author, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.WeeklyReport), args.Error(1)
}

func (m *MockReportRepository) FindByWeek(ctx context.Context, weekStart time.Time) ([]report.WeeklyReport, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.WeeklyReport), args.Error(1)
}

func (m *MockReportRepository) FindVisibleTo(ctx context.Context, principal uuid.UUID, filter shared.Filter) ([]report.WeeklyReport, error) {
	args := m.Called(ctx, principal, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.WeeklyReport), args.Error(1)
}

func (m *MockReportRepository) Save(ctx context.Context, r *report.WeeklyReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPrincipalRepository struct {
	mock.Mock
}

func (m *MockPrincipalRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) FindByUsername(ctx context.Context, username string) (*identity.Principal, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Principal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) FindByTier(ctx context.Context, tier identity.Tier) ([]identity.Principal, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) Save(ctx context.Context, p *identity.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next(ctx context.Context, kind numbering.DocumentKind, at time.Time) (string, error) {
	args := m.Called(ctx, kind, at)
	return args.String(0), args.Error(1)
}

func monday() time.Time {
	return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // a Monday
}

func newTestReport(t *testing.T, author uuid.UUID) *report.WeeklyReport {
	t.Helper()
	r, err := report.NewWeeklyReport("WR202509010001", author, monday(), "Week 36", "Shipped the VN order.")
	require.NoError(t, err)
	return r
}

func newTestPrincipal(t *testing.T, tier identity.Tier) *identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal("P202509010001", "someone", "Some One", "password1")
	require.NoError(t, err)
	require.NoError(t, p.AssignTier(tier, uuid.New()))
	return p
}

func TestCreate(t *testing.T) {
	reports := new(MockReportRepository)
	numbers := new(MockNumberGenerator)
	svc := NewService(reports, new(MockPrincipalRepository), numbers, zap.NewNop())

	author := uuid.New()
	numbers.On("Next", mock.Anything, numbering.KindWeeklyReport, mock.Anything).Return("WR202509010001", nil)
	reports.On("Save", mock.Anything, mock.AnythingOfType("*report.WeeklyReport")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateReportRequest{
		WeekStart: monday(),
		Title:     "Week 36",
		Body:      "Shipped the VN order.",
		Author:    author,
	})
	require.NoError(t, err)
	assert.Equal(t, "WR202509010001", resp.Number)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, monday().AddDate(0, 0, 6), resp.WeekEnd)
}

func TestCreate_RejectsMidWeekStart(t *testing.T) {
	reports := new(MockReportRepository)
	numbers := new(MockNumberGenerator)
	svc := NewService(reports, new(MockPrincipalRepository), numbers, zap.NewNop())

	numbers.On("Next", mock.Anything, numbering.KindWeeklyReport, mock.Anything).Return("WR202509030001", nil)

	_, err := svc.Create(context.Background(), CreateReportRequest{
		WeekStart: monday().AddDate(0, 0, 2),
		Title:     "Week 36",
		Author:    uuid.New(),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_WEEK", domainErr.Code)
	reports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestApprove_ViaGrant(t *testing.T) {
	reports := new(MockReportRepository)
	svc := NewService(reports, new(MockPrincipalRepository), new(MockNumberGenerator), zap.NewNop())

	author := uuid.New()
	approver := uuid.New()
	r := newTestReport(t, author)
	_, err := r.Grant(author, approver, report.LevelApprove)
	require.NoError(t, err)
	require.NoError(t, r.Submit(author))

	reports.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	reports.On("Save", mock.Anything, r).Return(nil)

	resp, err := svc.Approve(context.Background(), r.ID, approver)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	assert.Equal(t, &approver, resp.Approver)
}

func TestApprove_WithoutGrant(t *testing.T) {
	reports := new(MockReportRepository)
	svc := NewService(reports, new(MockPrincipalRepository), new(MockNumberGenerator), zap.NewNop())

	author := uuid.New()
	r := newTestReport(t, author)
	require.NoError(t, r.Submit(author))
	reports.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	_, err := svc.Approve(context.Background(), r.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
	reports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGrantAndRevoke(t *testing.T) {
	reports := new(MockReportRepository)
	principals := new(MockPrincipalRepository)
	svc := NewService(reports, principals, new(MockNumberGenerator), zap.NewNop())

	author := uuid.New()
	grantee := newTestPrincipal(t, identity.TierNormal)
	r := newTestReport(t, author)

	principals.On("FindByID", mock.Anything, grantee.ID).Return(grantee, nil)
	reports.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	reports.On("Save", mock.Anything, r).Return(nil)

	resp, err := svc.Grant(context.Background(), r.ID, GrantAccessRequest{
		Grantee: grantee.ID,
		Level:   "READ",
		Grantor: author,
	})
	require.NoError(t, err)
	require.Len(t, resp.Grants, 1)
	assert.Equal(t, "READ", resp.Grants[0].Level)

	// Granting again while active fails
	_, err = svc.Grant(context.Background(), r.ID, GrantAccessRequest{
		Grantee: grantee.ID,
		Level:   "EDIT",
		Grantor: author,
	})
	assert.ErrorIs(t, err, shared.ErrAlreadyGranted)

	resp, err = svc.Revoke(context.Background(), r.ID, RevokeAccessRequest{
		Grantee: grantee.ID,
		Grantor: author,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Grants)
}

func TestGetByID_HiddenLooksMissing(t *testing.T) {
	reports := new(MockReportRepository)
	principals := new(MockPrincipalRepository)
	svc := NewService(reports, principals, new(MockNumberGenerator), zap.NewNop())

	r := newTestReport(t, uuid.New())
	stranger := newTestPrincipal(t, identity.TierNormal)
	reports.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	principals.On("FindByID", mock.Anything, stranger.ID).Return(stranger, nil)

	_, err := svc.GetByID(context.Background(), r.ID, stranger.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetByID_MasterSeesEverything(t *testing.T) {
	reports := new(MockReportRepository)
	principals := new(MockPrincipalRepository)
	svc := NewService(reports, principals, new(MockNumberGenerator), zap.NewNop())

	r := newTestReport(t, uuid.New())
	master := newTestPrincipal(t, identity.TierMaster)
	reports.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	principals.On("FindByID", mock.Anything, master.ID).Return(master, nil)

	resp, err := svc.GetByID(context.Background(), r.ID, master.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Number, resp.Number)
}

func TestList_MasterVsGrantHolder(t *testing.T) {
	reports := new(MockReportRepository)
	principals := new(MockPrincipalRepository)
	svc := NewService(reports, principals, new(MockNumberGenerator), zap.NewNop())

	master := newTestPrincipal(t, identity.TierMaster)
	normal := newTestPrincipal(t, identity.TierNormal)
	all := []report.WeeklyReport{*newTestReport(t, uuid.New()), *newTestReport(t, uuid.New())}

	principals.On("FindByID", mock.Anything, master.ID).Return(master, nil)
	principals.On("FindByID", mock.Anything, normal.ID).Return(normal, nil)
	reports.On("FindAll", mock.Anything, mock.Anything).Return(all, nil)
	reports.On("FindVisibleTo", mock.Anything, normal.ID, mock.Anything).Return(all[:1], nil)

	got, err := svc.List(context.Background(), master.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(context.Background(), normal.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	reports.AssertNumberOfCalls(t, "FindAll", 1)
}
