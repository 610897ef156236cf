package engine

import (
	"math"

	"github.com/google/uuid"

	"splittab/internal/domain"
)

// Settle computes the full settlement summary for a bill snapshot: what each
// participant owes across all receipts, what they paid, their net balance,
// and the raw plus optimized transfer lists. Pure: identical snapshots always
// produce identical summaries.
func Settle(snap *domain.BillSnapshot) *domain.SettlementSummary {
	owes := make(map[uuid.UUID]float64)
	paid := make(map[uuid.UUID]float64)

	for _, sr := range snap.Receipts {
		for _, ri := range sr.Items {
			var shares map[uuid.UUID]float64
			if ri.Item.IsTaxOrCharge {
				shares = DistributeCharge(ri, sr.Items)
			} else {
				shares = Allocate(ri.Item, ri.Splits)
			}
			for id, amount := range shares {
				// Splits referencing participants no longer on the bill are
				// ignored rather than invented into the summary.
				if snap.Participant(id) == nil {
					continue
				}
				owes[id] += amount
			}
		}
	}

	for _, p := range snap.Payments {
		if snap.Participant(p.PayerID) == nil {
			continue
		}
		paid[p.PayerID] += p.Amount
	}

	standings := make([]domain.ParticipantStanding, 0, len(snap.Participants))
	balances := make([]NetBalance, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		standings = append(standings, domain.ParticipantStanding{
			ID:      p.ID,
			Name:    p.Name,
			Owes:    round2(owes[p.ID]),
			Paid:    round2(paid[p.ID]),
			Balance: round2(paid[p.ID] - owes[p.ID]),
		})
		balances = append(balances, NetBalance{
			ParticipantID: p.ID,
			Name:          p.Name,
			Amount:        paid[p.ID] - owes[p.ID],
		})
	}

	return &domain.SettlementSummary{
		BillID:               snap.Bill.ID,
		CurrencySymbol:       snap.Bill.CurrencySymbol,
		Participants:         standings,
		RawDebts:             RawDebts(balances),
		OptimizedSettlements: Optimize(balances),
	}
}

// round2 rounds to 2 decimal places, the resolution of all engine output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
