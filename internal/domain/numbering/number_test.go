package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	at := time.Date(2025, 4, 16, 9, 30, 15, 0, time.UTC)

	tests := []struct {
		name     string
		kind     DocumentKind
		sequence int
		want     string
	}{
		{"quotation", KindQuotation, 3, "Q202504160003"},
		{"purchase order", KindPurchaseOrder, 12, "PO202504012"},
		{"shipping", KindShipping, 1, "SH202504001"},
		{"expense request", KindExpenseRequest, 0, "EXP20250416093015"},
		{"workflow", KindWorkflow, 0, "WF20250416093015"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.kind, at, tt.sequence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Validation(t *testing.T) {
	at := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)

	_, err := Format(DocumentKind("X"), at, 1)
	assert.Error(t, err)

	_, err = Format(KindQuotation, at, 0)
	assert.Error(t, err)

	_, err = Format(KindQuotation, at, -1)
	assert.Error(t, err)

	// 4-digit sequence namespace caps at 9999
	_, err = Format(KindQuotation, at, 10000)
	assert.Error(t, err)
	_, err = Format(KindQuotation, at, 9999)
	assert.NoError(t, err)
}

func TestParse_RoundTrip(t *testing.T) {
	at := time.Date(2025, 4, 16, 9, 30, 15, 0, time.UTC)

	kinds := []struct {
		kind     DocumentKind
		sequence int
	}{
		{KindQuotation, 3},
		{KindPurchaseOrder, 12},
		{KindShipping, 999},
		{KindExpenseRequest, 0},
		{KindWorkflow, 0},
		{KindWeeklyReport, 42},
		{KindPrincipal, 7},
		{KindNotice, 1},
	}

	for _, tt := range kinds {
		t.Run(string(tt.kind), func(t *testing.T) {
			value, err := Format(tt.kind, at, tt.sequence)
			require.NoError(t, err)

			parsed, err := Parse(value)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parsed.Kind)
			assert.Equal(t, tt.sequence, parsed.Sequence)
			assert.Equal(t, value, parsed.Value)
		})
	}
}

func TestParse_PrefixDisambiguation(t *testing.T) {
	// "PO..." must parse as a purchase order, not a "P" principal number
	parsed, err := Parse("PO202504012")
	require.NoError(t, err)
	assert.Equal(t, KindPurchaseOrder, parsed.Kind)

	// "P..." with an 8-digit date and 4-digit sequence is a principal number
	parsed, err = Parse("P202504160001")
	require.NoError(t, err)
	assert.Equal(t, KindPrincipal, parsed.Kind)
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"X202504160003",
		"Q2025041600",      // too short
		"Q20250416000003",  // too long
		"Q202513160003",    // month 13
		"QAAAAAAAA0003",    // non-numeric date
		"Q202504160000",    // zero sequence
		"EXP2025041609301", // truncated timestamp
	}

	for _, value := range cases {
		t.Run(value, func(t *testing.T) {
			_, err := Parse(value)
			assert.Error(t, err)
		})
	}
}

func TestDateSegment(t *testing.T) {
	at := time.Date(2025, 4, 16, 9, 30, 15, 0, time.UTC)

	seg, err := DateSegment(KindQuotation, at)
	require.NoError(t, err)
	assert.Equal(t, "20250416", seg)

	seg, err = DateSegment(KindPurchaseOrder, at)
	require.NoError(t, err)
	assert.Equal(t, "202504", seg)
}

func TestHasSequence(t *testing.T) {
	assert.True(t, HasSequence(KindQuotation))
	assert.True(t, HasSequence(KindShipping))
	assert.False(t, HasSequence(KindExpenseRequest))
	assert.False(t, HasSequence(KindWorkflow))
}
