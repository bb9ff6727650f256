package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/quotation"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

func draftQuotation(t *testing.T, number string) *quotation.Quotation {
	t.Helper()
	date := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
	q, err := quotation.NewQuotation(number, uuid.New(), "Hanoi Textiles", date, date.AddDate(0, 1, 0))
	require.NoError(t, err)
	_, err = q.AddItem("Cotton fabric", decimal.NewFromInt(100), decimal.RequireFromString("12.50"), valueobject.USD)
	require.NoError(t, err)
	_, err = q.AddItem("Dye", decimal.NewFromInt(20), decimal.RequireFromString("67500"), valueobject.KRW)
	require.NoError(t, err)
	return q
}

func TestGormQuotationRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormQuotationRepository(db.DB)
	ctx := context.Background()

	q := draftQuotation(t, "Q202504160001")
	require.NoError(t, q.Submit())
	require.NoError(t, q.Approve(map[valueobject.Currency]decimal.Decimal{
		valueobject.KRW: decimal.RequireFromString("1350"),
	}))
	require.NoError(t, repo.Save(ctx, q))

	found, err := repo.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q202504160001", found.Number)
	assert.Equal(t, quotation.StatusApproved, found.Status)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "Cotton fabric", found.Items[0].Product)
	assert.True(t, found.Items[1].UnitPrice.Equal(decimal.RequireFromString("67500")))

	// The FX snapshot frozen at approval survives the round trip.
	require.Contains(t, found.FXSnapshot, valueobject.KRW)
	assert.True(t, found.FXSnapshot[valueobject.KRW].Equal(decimal.RequireFromString("1350")))
	assert.True(t, found.TotalUSD.Equal(q.TotalUSD))
	require.NotNil(t, found.ApprovedAt)
}

func TestGormQuotationRepository_FindByNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormQuotationRepository(db.DB)
	ctx := context.Background()

	q := draftQuotation(t, "Q202504160002")
	require.NoError(t, repo.Save(ctx, q))

	found, err := repo.FindByNumber(ctx, "Q202504160002")
	require.NoError(t, err)
	assert.Equal(t, q.ID, found.ID)

	_, err = repo.FindByNumber(ctx, "Q209901010001")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormQuotationRepository_FindByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormQuotationRepository(db.DB)
	ctx := context.Background()

	draft := draftQuotation(t, "Q202504160003")
	require.NoError(t, repo.Save(ctx, draft))

	submitted := draftQuotation(t, "Q202504160004")
	require.NoError(t, submitted.Submit())
	require.NoError(t, repo.Save(ctx, submitted))

	found, err := repo.FindByStatus(ctx, quotation.StatusSubmitted, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Q202504160004", found[0].Number)
}

func TestGormQuotationRepository_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormQuotationRepository(db.DB)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormQuotationRepository_Count(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormQuotationRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, draftQuotation(t, "Q202504160005")))
	require.NoError(t, repo.Save(ctx, draftQuotation(t, "Q202504160006")))

	count, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(quotation.StatusApproved)
	count, err = repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
