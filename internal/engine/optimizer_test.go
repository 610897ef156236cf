package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splittab/internal/engine"
)

func balance(name string, amount float64) engine.NetBalance {
	return engine.NetBalance{ParticipantID: uuid.New(), Name: name, Amount: amount}
}

func TestOptimize_GreedyLargestFirst(t *testing.T) {
	a := balance("A", 50)
	b := balance("B", 30)
	c := balance("C", -80)

	transfers := engine.Optimize([]engine.NetBalance{a, b, c})

	require.Len(t, transfers, 2)
	assert.Equal(t, c.ParticipantID, transfers[0].FromID)
	assert.Equal(t, a.ParticipantID, transfers[0].ToID)
	assert.InDelta(t, 50, transfers[0].Amount, 0.001)
	assert.Equal(t, c.ParticipantID, transfers[1].FromID)
	assert.Equal(t, b.ParticipantID, transfers[1].ToID)
	assert.InDelta(t, 30, transfers[1].Amount, 0.001)
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	balances := []engine.NetBalance{
		balance("A", 50),
		balance("B", 30),
		balance("C", -80),
	}

	first := engine.Optimize(balances)
	second := engine.Optimize(balances)

	assert.Equal(t, first, second)
	assert.InDelta(t, 50, balances[0].Amount, 0.001, "caller's slice untouched")
	assert.InDelta(t, -80, balances[2].Amount, 0.001)
}

func TestOptimize_SubEpsilonBalancesSettle(t *testing.T) {
	transfers := engine.Optimize([]engine.NetBalance{
		balance("A", 0.005),
		balance("B", -0.005),
	})

	assert.Empty(t, transfers)
	assert.NotNil(t, transfers)
}

func TestOptimize_AllSettled(t *testing.T) {
	transfers := engine.Optimize([]engine.NetBalance{
		balance("A", 0),
		balance("B", 0),
	})

	assert.Empty(t, transfers)
}

func TestOptimize_ChainOfDebtors(t *testing.T) {
	a := balance("A", 100)
	b := balance("B", -60)
	c := balance("C", -40)

	transfers := engine.Optimize([]engine.NetBalance{a, b, c})

	require.Len(t, transfers, 2)
	assert.Equal(t, b.ParticipantID, transfers[0].FromID)
	assert.InDelta(t, 60, transfers[0].Amount, 0.001)
	assert.Equal(t, c.ParticipantID, transfers[1].FromID)
	assert.InDelta(t, 40, transfers[1].Amount, 0.001)
}

func TestOptimize_TransferTotalsMatchBalances(t *testing.T) {
	balances := []engine.NetBalance{
		balance("A", 33.34),
		balance("B", 12.21),
		balance("C", -20.55),
		balance("D", -25.00),
	}

	transfers := engine.Optimize(balances)

	var out float64
	for _, tr := range transfers {
		out += tr.Amount
	}
	assert.InDelta(t, 45.55, out, 0.01, "transfers settle the full creditor side")

	for _, tr := range transfers {
		assert.Greater(t, tr.Amount, 0.01)
	}
}

func TestRawDebts_MatchesOptimize(t *testing.T) {
	balances := []engine.NetBalance{
		balance("A", 50),
		balance("B", 30),
		balance("C", -80),
	}

	assert.Equal(t, engine.Optimize(balances), engine.RawDebts(balances))
}
