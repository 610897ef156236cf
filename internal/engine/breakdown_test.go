package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splittab/internal/domain"
	"splittab/internal/engine"
)

func TestParticipantBreakdown_ItemsAndTax(t *testing.T) {
	snap, people := dinnerSnapshot()
	bea := people[1]

	breakdown, err := engine.ParticipantBreakdown(snap, bea.ID)
	require.NoError(t, err)

	assert.Equal(t, bea.ID, breakdown.ParticipantID)
	assert.Equal(t, "Bea", breakdown.ParticipantName)
	assert.Equal(t, "$", breakdown.CurrencySymbol)
	require.Len(t, breakdown.Items, 3, "main, side, and tax share")

	byName := make(map[string]domain.BreakdownLine)
	for _, line := range breakdown.Items {
		byName[line.ItemName] = line
	}

	main := byName["main"]
	assert.InDelta(t, 33.33, main.Amount, 0.01)
	assert.Equal(t, domain.SplitEqual, main.SplitType)
	assert.False(t, main.IsTaxOrCharge)

	side := byName["side"]
	assert.InDelta(t, 30, side.Amount, 0.001)

	tax := byName["tax"]
	assert.True(t, tax.IsTaxOrCharge)
	require.NotNil(t, tax.ChargeType)
	assert.Equal(t, domain.ChargeTax, *tax.ChargeType)
	assert.InDelta(t, 6.33, tax.Amount, 0.01)
	assert.Empty(t, tax.SplitType, "proportional shares have no explicit split")

	assert.InDelta(t, 69.67, breakdown.Total, 0.01)
}

func TestParticipantBreakdown_MatchesSettleOwes(t *testing.T) {
	snap, people := dinnerSnapshot()

	summary := engine.Settle(snap)
	byID := make(map[uuid.UUID]domain.ParticipantStanding)
	for _, s := range summary.Participants {
		byID[s.ID] = s
	}

	for _, p := range people {
		breakdown, err := engine.ParticipantBreakdown(snap, p.ID)
		require.NoError(t, err)
		assert.InDelta(t, byID[p.ID].Owes, breakdown.Total, 0.01,
			"breakdown total agrees with summary for %s", p.Name)
	}
}

func TestParticipantBreakdown_UnknownParticipant(t *testing.T) {
	snap, _ := dinnerSnapshot()

	_, err := engine.ParticipantBreakdown(snap, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantBreakdown_SkipsItemsWithoutShare(t *testing.T) {
	snap, people := dinnerSnapshot()
	ana := people[0]

	breakdown, err := engine.ParticipantBreakdown(snap, ana.ID)
	require.NoError(t, err)

	for _, line := range breakdown.Items {
		assert.NotEqual(t, "side", line.ItemName, "Ana holds no split on the side")
	}
}

func TestReceiptBreakdown_EchoesConfiguration(t *testing.T) {
	snap, people := dinnerSnapshot()
	receiptID := snap.Receipts[0].Receipt.ID

	breakdown, err := engine.ReceiptBreakdown(snap, receiptID)
	require.NoError(t, err)

	assert.Equal(t, receiptID, breakdown.ReceiptID)
	require.Len(t, breakdown.Items, 3)
	assert.InDelta(t, 143, breakdown.Total, 0.001)

	main := breakdown.Items[0]
	assert.Equal(t, "main", main.Name)
	require.Len(t, main.Assignees, 3)
	assert.Equal(t, "Ana", main.Assignees[0].ParticipantName)
	assert.Equal(t, domain.SplitEqual, main.Assignees[0].SplitType)

	tax := breakdown.Items[2]
	assert.True(t, tax.IsTaxOrCharge)
	require.NotNil(t, tax.TaxDistribution)
	assert.Equal(t, domain.DistributionProportional, *tax.TaxDistribution)
	assert.Empty(t, tax.Assignees)

	require.NotNil(t, breakdown.PayerID)
	assert.Equal(t, people[0].ID, *breakdown.PayerID)
	assert.Equal(t, "Ana", breakdown.Payer)
}

func TestReceiptBreakdown_UnknownReceipt(t *testing.T) {
	snap, _ := dinnerSnapshot()

	_, err := engine.ReceiptBreakdown(snap, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptBreakdown_NoReceiptScopedPayment(t *testing.T) {
	snap, _ := dinnerSnapshot()
	receiptID := snap.Receipts[0].Receipt.ID
	// The fixture payment is bill-wide (nil receipt id).
	snap.Payments[0].ReceiptID = nil

	breakdown, err := engine.ReceiptBreakdown(snap, receiptID)
	require.NoError(t, err)

	assert.Nil(t, breakdown.PayerID)
	assert.Empty(t, breakdown.Payer)
}
