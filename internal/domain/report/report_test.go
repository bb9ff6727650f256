package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/shared"
)

var testWeekStart = time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC) // a Monday

func createTestReport(t *testing.T, author uuid.UUID) *WeeklyReport {
	t.Helper()
	r, err := NewWeeklyReport("WR202504140001", author, testWeekStart, "Week 16", "Shipped the Hanoi order.")
	require.NoError(t, err)
	return r
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestNewWeeklyReport(t *testing.T) {
	author := uuid.New()
	r := createTestReport(t, author)

	assert.Equal(t, StatusDraft, r.Status)
	assert.Equal(t, author, r.Author)
	assert.Equal(t, testWeekStart, r.WeekStart)
	assert.Equal(t, testWeekStart.AddDate(0, 0, 6), r.WeekEnd)
	assert.Empty(t, r.Grants)
}

func TestNewWeeklyReport_WeekMustStartMonday(t *testing.T) {
	_, err := NewWeeklyReport("WR202504150001", uuid.New(), testWeekStart.AddDate(0, 0, 1), "T", "B")
	assertDomainCode(t, err, "INVALID_WEEK")
}

func TestWeeklyReport_Lifecycle(t *testing.T) {
	author := uuid.New()
	approver := uuid.New()
	r := createTestReport(t, author)

	// Only the author can submit
	assert.ErrorIs(t, r.Submit(uuid.New()), shared.ErrForbidden)
	require.NoError(t, r.Submit(author))
	assert.Equal(t, StatusSubmitted, r.Status)

	// Deciding requires an approve-level grant
	assert.ErrorIs(t, r.Approve(approver), shared.ErrForbidden)
	_, err := r.Grant(author, approver, LevelApprove)
	require.NoError(t, err)
	require.NoError(t, r.Approve(approver))

	assert.Equal(t, StatusApproved, r.Status)
	require.NotNil(t, r.Approver)
	assert.Equal(t, approver, *r.Approver)
	assert.NotNil(t, r.DecidedAt)

	// A decided report cannot be decided again
	assertDomainCode(t, r.Reject(approver, "late"), "ALREADY_DECIDED")
}

func TestWeeklyReport_RejectRequiresReason(t *testing.T) {
	author := uuid.New()
	approver := uuid.New()
	r := createTestReport(t, author)
	_, err := r.Grant(author, approver, LevelApprove)
	require.NoError(t, err)
	require.NoError(t, r.Submit(author))

	assertDomainCode(t, r.Reject(approver, ""), "INVALID_REASON")
	require.NoError(t, r.Reject(approver, "missing numbers"))
	assert.Equal(t, StatusRejected, r.Status)
	assert.Equal(t, "missing numbers", r.RejectReason)
}

func TestWeeklyReport_SelfApproval(t *testing.T) {
	author := uuid.New()
	r := createTestReport(t, author)
	require.NoError(t, r.Submit(author))

	assertDomainCode(t, r.Approve(author), "SELF_APPROVAL")
}

func TestWeeklyReport_GrantAndRevoke(t *testing.T) {
	author := uuid.New()
	reader := uuid.New()
	r := createTestReport(t, author)

	// Before any grant only the author sees the report
	assert.True(t, r.VisibleTo(author))
	assert.False(t, r.VisibleTo(reader))

	g, err := r.Grant(author, reader, LevelRead)
	require.NoError(t, err)
	assert.True(t, g.Active)
	assert.True(t, r.VisibleTo(reader))

	// A second active grant for the same grantee is rejected
	_, err = r.Grant(author, reader, LevelEdit)
	assertDomainCode(t, err, "ALREADY_GRANTED")

	// Revocation deactivates but keeps the record
	require.NoError(t, r.Revoke(author, reader))
	assert.False(t, r.VisibleTo(reader))
	require.Len(t, r.Grants, 1)
	assert.False(t, r.Grants[0].Active)
	assert.NotNil(t, r.Grants[0].RevokedAt)

	// After revocation a fresh grant is allowed again
	_, err = r.Grant(author, reader, LevelRead)
	require.NoError(t, err)
	assert.True(t, r.VisibleTo(reader))
	assert.Len(t, r.Grants, 2)
	assert.Len(t, r.ActiveGrants(), 1)
}

func TestWeeklyReport_GrantRules(t *testing.T) {
	author := uuid.New()
	r := createTestReport(t, author)

	_, err := r.Grant(uuid.New(), uuid.New(), LevelRead)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = r.Grant(author, author, LevelRead)
	assertDomainCode(t, err, "SELF_GRANT")

	_, err = r.Grant(author, uuid.New(), AccessLevel("OWN"))
	assertDomainCode(t, err, "INVALID_LEVEL")

	assert.ErrorIs(t, r.Revoke(author, uuid.New()), shared.ErrNotFound)
}

func TestWeeklyReport_EditByGrantLevel(t *testing.T) {
	author := uuid.New()
	reader := uuid.New()
	editor := uuid.New()
	r := createTestReport(t, author)
	_, err := r.Grant(author, reader, LevelRead)
	require.NoError(t, err)
	_, err = r.Grant(author, editor, LevelEdit)
	require.NoError(t, err)

	assert.ErrorIs(t, r.UpdateBody(reader, "", "tampered"), shared.ErrForbidden)
	require.NoError(t, r.UpdateBody(editor, "", "amended"))
	assert.Equal(t, "amended", r.Body)
}

func TestAccessLevel_Covers(t *testing.T) {
	assert.True(t, LevelApprove.Covers(LevelRead))
	assert.True(t, LevelEdit.Covers(LevelRead))
	assert.False(t, LevelRead.Covers(LevelEdit))
	assert.False(t, AccessLevel("OWN").Covers(LevelRead))
}
