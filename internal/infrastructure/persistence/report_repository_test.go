package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/report"
	"github.com/tradeops/backend/internal/domain/shared"
)

func weeklyReport(t *testing.T, number string, author uuid.UUID) *report.WeeklyReport {
	t.Helper()
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	r, err := report.NewWeeklyReport(number, author, monday, "Week 36", "Shipments on track.")
	require.NoError(t, err)
	return r
}

func TestGormReportRepository_RoundTripWithGrants(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormReportRepository(db.DB)
	ctx := context.Background()

	author, grantee := uuid.New(), uuid.New()
	r := weeklyReport(t, "WR202509010001", author)
	_, err := r.Grant(author, grantee, report.LevelRead)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, report.StatusDraft, found.Status)
	assert.Equal(t, r.WeekStart, found.WeekStart.UTC())
	require.Len(t, found.Grants, 1)
	assert.Equal(t, grantee, found.Grants[0].Grantee)
	assert.True(t, found.Grants[0].Active)
}

func TestGormReportRepository_SaveReplacesGrants(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormReportRepository(db.DB)
	ctx := context.Background()

	author, grantee := uuid.New(), uuid.New()
	r := weeklyReport(t, "WR202509010002", author)
	_, err := r.Grant(author, grantee, report.LevelEdit)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	require.NoError(t, r.Revoke(author, grantee))
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, found.Grants, 1)
	assert.False(t, found.Grants[0].Active)
	assert.Empty(t, found.ActiveGrants())
}

func TestGormReportRepository_FindVisibleTo(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormReportRepository(db.DB)
	ctx := context.Background()

	author, grantee, stranger := uuid.New(), uuid.New(), uuid.New()

	mine := weeklyReport(t, "WR202509010003", author)
	require.NoError(t, repo.Save(ctx, mine))

	granted := weeklyReport(t, "WR202509010004", uuid.New())
	_, err := granted.Grant(granted.Author, grantee, report.LevelRead)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, granted))

	revoked := weeklyReport(t, "WR202509010005", uuid.New())
	_, err = revoked.Grant(revoked.Author, grantee, report.LevelRead)
	require.NoError(t, err)
	require.NoError(t, revoked.Revoke(revoked.Author, grantee))
	require.NoError(t, repo.Save(ctx, revoked))

	visible, err := repo.FindVisibleTo(ctx, author, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "WR202509010003", visible[0].Number)

	// A revoked grant no longer opens the report.
	visible, err = repo.FindVisibleTo(ctx, grantee, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "WR202509010004", visible[0].Number)

	visible, err = repo.FindVisibleTo(ctx, stranger, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestGormReportRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormReportRepository(db.DB)
	ctx := context.Background()

	author := uuid.New()
	r := weeklyReport(t, "WR202509010006", author)
	_, err := r.Grant(author, uuid.New(), report.LevelRead)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	require.NoError(t, repo.Delete(ctx, r.ID))
	_, err = repo.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, r.ID), shared.ErrNotFound)
}
