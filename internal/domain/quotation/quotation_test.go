package quotation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

func createTestQuotation(t *testing.T) *Quotation {
	t.Helper()
	date := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
	q, err := NewQuotation("Q202504160001", uuid.New(), "Hanoi Trading Co", date, date.AddDate(0, 1, 0))
	require.NoError(t, err)
	return q
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusRejected, false},
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusDraft, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusSubmitted, false},
		{StatusRejected, StatusSubmitted, false},
		{StatusRejected, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewQuotation_Validation(t *testing.T) {
	date := time.Now()

	_, err := NewQuotation("", uuid.New(), "C", date, date)
	assert.Error(t, err)

	_, err = NewQuotation("Q202504160001", uuid.Nil, "C", date, date)
	assert.Error(t, err)

	_, err = NewQuotation("Q202504160001", uuid.New(), "C", date, date.AddDate(0, 0, -1))
	assert.Error(t, err)
}

func TestQuotation_AddItem(t *testing.T) {
	q := createTestQuotation(t)

	item, err := q.AddItem("Steel Coil", decimal.NewFromInt(10), decimal.NewFromInt(1000), valueobject.USD)
	require.NoError(t, err)
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 1, q.ItemCount())
	assert.True(t, q.TotalsByCurrency[valueobject.USD].Equal(decimal.NewFromInt(10000)))
}

func TestQuotation_AddItem_Validation(t *testing.T) {
	q := createTestQuotation(t)

	_, err := q.AddItem("", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)
	assert.Error(t, err)

	_, err = q.AddItem("X", decimal.Zero, decimal.NewFromInt(1), valueobject.USD)
	assert.Error(t, err)

	_, err = q.AddItem("X", decimal.NewFromInt(1), decimal.NewFromInt(-1), valueobject.USD)
	assert.Error(t, err)

	_, err = q.AddItem("X", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.Currency("EUR"))
	assert.Error(t, err)
}

func TestQuotation_RemoveItem(t *testing.T) {
	q := createTestQuotation(t)
	item, err := q.AddItem("Steel Coil", decimal.NewFromInt(10), decimal.NewFromInt(1000), valueobject.USD)
	require.NoError(t, err)

	require.NoError(t, q.RemoveItem(item.ID))
	assert.Equal(t, 0, q.ItemCount())
	assert.True(t, q.TotalsByCurrency[valueobject.USD].IsZero())

	assert.Error(t, q.RemoveItem(uuid.New()))
}

func TestQuotation_Submit(t *testing.T) {
	q := createTestQuotation(t)

	// No items yet
	assert.Error(t, q.Submit())

	_, err := q.AddItem("Steel Coil", decimal.NewFromInt(1), decimal.NewFromInt(100), valueobject.USD)
	require.NoError(t, err)
	require.NoError(t, q.Submit())
	assert.Equal(t, StatusSubmitted, q.Status)
	assert.NotNil(t, q.SubmittedAt)

	// Items are frozen once out of draft
	_, err = q.AddItem("More", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)
	assert.Error(t, err)
}

func TestQuotation_Approve_FreezesTotalsAndSnapshot(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("Steel Coil", decimal.NewFromInt(10), decimal.NewFromInt(1000), valueobject.USD)
	require.NoError(t, err)
	_, err = q.AddItem("Packing", decimal.NewFromInt(2), decimal.NewFromInt(13000000), valueobject.VND)
	require.NoError(t, err)
	require.NoError(t, q.Submit())

	snapshot := map[valueobject.Currency]decimal.Decimal{
		valueobject.VND: decimal.NewFromInt(26000),
	}
	require.NoError(t, q.Approve(snapshot))

	assert.Equal(t, StatusApproved, q.Status)
	assert.NotNil(t, q.ApprovedAt)
	// 10000 USD + 26000000 VND / 26000 = 10000 + 1000
	assert.True(t, q.TotalUSD.Equal(decimal.NewFromInt(11000)), "got %s", q.TotalUSD)
	assert.True(t, q.FXSnapshot[valueobject.VND].Equal(decimal.NewFromInt(26000)))

	// Approved documents are immutable
	_, err = q.AddItem("Late", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)
	assert.Error(t, err)
	assert.Error(t, q.RemoveItem(q.Items[0].ID))
	assert.False(t, q.CanDelete())
}

func TestQuotation_Approve_MissingRate(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("Packing", decimal.NewFromInt(1), decimal.NewFromInt(35000), valueobject.THB)
	require.NoError(t, err)
	require.NoError(t, q.Submit())

	err = q.Approve(map[valueobject.Currency]decimal.Decimal{})
	assert.Error(t, err)
	assert.Equal(t, StatusSubmitted, q.Status)
}

func TestQuotation_Approve_RequiresSubmitted(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("X", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)
	require.NoError(t, err)

	assert.Error(t, q.Approve(nil))
}

func TestQuotation_Reject(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("X", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)
	require.NoError(t, err)
	require.NoError(t, q.Submit())

	assert.Error(t, q.Reject(""))
	require.NoError(t, q.Reject("pricing out of date"))
	assert.Equal(t, StatusRejected, q.Status)
	assert.True(t, q.IsTerminal())

	// Rejection is terminal
	assert.Error(t, q.Approve(nil))
}

func TestQuotation_Currencies(t *testing.T) {
	q := createTestQuotation(t)
	_, _ = q.AddItem("A", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)
	_, _ = q.AddItem("B", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.VND)
	_, _ = q.AddItem("C", decimal.NewFromInt(1), decimal.NewFromInt(1), valueobject.USD)

	assert.ElementsMatch(t, []valueobject.Currency{valueobject.USD, valueobject.VND}, q.Currencies())
}
