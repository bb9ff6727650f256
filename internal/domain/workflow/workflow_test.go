package workflow

import (
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

func approvedQuotation(t *testing.T) *quotation.Quotation {
	t.Helper()
	date := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
	q, err := quotation.NewQuotation("Q202504160001", uuid.New(), "Hanoi Trading Co", date, date.AddDate(0, 1, 0))
	require.NoError(t, err)
	_, err = q.AddItem("Steel Coil", decimal.NewFromInt(10), decimal.NewFromInt(1000), valueobject.USD)
	require.NoError(t, err)
	require.NoError(t, q.Submit())
	require.NoError(t, q.Approve(nil))
	return q
}

func seededWorkflow(t *testing.T) *Workflow {
	t.Helper()
	w, err := SeedFromQuotation("WF20250416093015", approvedQuotation(t), uuid.New())
	require.NoError(t, err)
	return w
}

func TestSeedFromQuotation(t *testing.T) {
	q := approvedQuotation(t)
	actor := uuid.New()

	w, err := SeedFromQuotation("WF20250416093015", q, actor)
	require.NoError(t, err)

	assert.Equal(t, StageQuotationApproved, w.CurrentStage)
	assert.Equal(t, StatusActive, w.Status)
	assert.Equal(t, q.ID, w.QuotationID)
	assert.True(t, w.AmountUSD.Equal(decimal.NewFromInt(10000)))
	require.Len(t, w.History, 1)
	assert.Equal(t, actor, w.History[0].Actor)
	assert.Nil(t, w.History[0].ExitedAt)
}

func TestSeedFromQuotation_NotApproved(t *testing.T) {
	date := time.Now()
	q, err := quotation.NewQuotation("Q202504160002", uuid.New(), "C", date, date.AddDate(0, 1, 0))
	require.NoError(t, err)

	_, err = SeedFromQuotation("WF20250416093015", q, uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_APPROVED", domainErr.Code)
}

func TestWorkflow_AdvanceToCompletion(t *testing.T) {
	// Seed and drive: quotation 10 x 1000 USD, approve, seed, advance 6 times
	w := seededWorkflow(t)
	actor := uuid.New()

	for i := 0; i < 6; i++ {
		require.NoError(t, w.Advance(actor))
	}

	assert.Equal(t, StatusCompleted, w.Status)
	assert.Equal(t, StageSettled, w.CurrentStage)
	assert.True(t, w.AmountUSD.Equal(decimal.NewFromInt(10000)))
	require.Len(t, w.History, 7)

	// History is strictly ascending in stage index; terminal entry matches
	for i := 1; i < len(w.History); i++ {
		assert.Greater(t, w.History[i].Stage.Index(), w.History[i-1].Stage.Index())
		assert.NotNil(t, w.History[i-1].ExitedAt)
	}
	assert.Equal(t, w.CurrentStage, w.History[len(w.History)-1].Stage)
	assert.Nil(t, w.History[len(w.History)-1].ExitedAt)
}

func TestWorkflow_AdvancePastSettled(t *testing.T) {
	w := seededWorkflow(t)
	actor := uuid.New()
	for i := 0; i < 6; i++ {
		require.NoError(t, w.Advance(actor))
	}

	// Advancing a workflow already at Settled fails with TERMINAL
	err := w.Advance(actor)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TERMINAL", domainErr.Code)
}

func TestWorkflow_AdvanceNotIdempotent(t *testing.T) {
	w := seededWorkflow(t)
	actor := uuid.New()

	require.NoError(t, w.Advance(actor))
	require.NoError(t, w.Advance(actor))
	// Two sequential calls advanced two stages
	assert.Equal(t, StagePurchaseOrderIssued, w.CurrentStage)
}

func TestWorkflow_Cancel(t *testing.T) {
	w := seededWorkflow(t)
	actor := uuid.New()
	require.NoError(t, w.Advance(actor))

	assert.Error(t, w.Cancel(actor, ""))
	require.NoError(t, w.Cancel(actor, "customer withdrew"))

	assert.Equal(t, StatusCancelled, w.Status)
	assert.Equal(t, StageCancelled, w.CurrentStage)
	assert.Equal(t, "customer withdrew", w.CancelReason)

	// Cancellation is terminal and irrecoverable
	err := w.Advance(actor)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_ACTIVE", domainErr.Code)

	assert.Error(t, w.Cancel(actor, "again"))
}

func TestWorkflow_AdvanceAfterConcurrentCancel(t *testing.T) {
	// An actor advancing right after another cancelled observes the
	// cancellation and fails with NOT_ACTIVE.
	w := seededWorkflow(t)
	require.NoError(t, w.Cancel(uuid.New(), "cancelled elsewhere"))

	err := w.Advance(uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_ACTIVE", domainErr.Code)
}

func TestWorkflow_ValueFixedAtSeed(t *testing.T) {
	q := approvedQuotation(t)
	w, err := SeedFromQuotation("WF20250416093015", q, uuid.New())
	require.NoError(t, err)

	seeded := w.AmountUSD
	require.NoError(t, w.Advance(uuid.New()))
	assert.True(t, w.AmountUSD.Equal(seeded))
}
