package engine

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"splittab/internal/domain"
)

// epsilon is the cent-level tolerance below which a balance counts as settled.
// It absorbs floating-point noise from the allocation arithmetic.
const epsilon = 0.01

// NetBalance is one participant's net position: paid minus owed. Positive
// means the participant is owed money, negative means they owe.
type NetBalance struct {
	ParticipantID uuid.UUID
	Name          string
	Amount        float64
}

type party struct {
	id        uuid.UUID
	name      string
	remaining float64
}

// Optimize turns net balances into a short list of settling transfers using
// greedy largest-first matching: the biggest creditor is repeatedly paired
// with the biggest debtor and the smaller of the two outstanding amounts is
// settled. The input is never mutated; calling Optimize twice on the same
// slice yields identical output.
func Optimize(balances []NetBalance) []domain.Transfer {
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Amount > epsilon:
			creditors = append(creditors, party{id: b.ParticipantID, name: b.Name, remaining: b.Amount})
		case b.Amount < -epsilon:
			debtors = append(debtors, party{id: b.ParticipantID, name: b.Name, remaining: -b.Amount})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].remaining > creditors[j].remaining })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].remaining > debtors[j].remaining })

	transfers := []domain.Transfer{}
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := math.Min(creditor.remaining, debtor.remaining)
		if amount > epsilon {
			transfers = append(transfers, domain.Transfer{
				FromID: debtor.id,
				From:   debtor.name,
				ToID:   creditor.id,
				To:     creditor.name,
				Amount: round2(amount),
			})
		}
		creditor.remaining -= amount
		debtor.remaining -= amount

		if creditor.remaining < epsilon {
			i++
		}
		if debtor.remaining < epsilon {
			j++
		}
	}

	// Any residue left when one side runs out is sub-epsilon rounding drift;
	// it is dropped, never surfaced as an error.
	return transfers
}

// RawDebts is the presentational who-owes-whom view. It intentionally runs
// the same greedy matching as Optimize on its own copy of the balances; the
// two views are kept as separate calls so they can diverge later without a
// contract change.
func RawDebts(balances []NetBalance) []domain.Transfer {
	return Optimize(balances)
}
