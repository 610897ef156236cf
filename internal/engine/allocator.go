package engine

import (
	"github.com/google/uuid"

	"splittab/internal/domain"
)

// Allocate computes each assigned participant's share of a single item.
//
// Split types are applied in a fixed precedence order; changing the order
// changes who owes what, so it must not be reordered:
//
//  1. fixed amounts come straight off the item price
//  2. quantity splits take value × (price / quantity)
//  3. percent splits apply sequentially against the running remainder, each
//     one shrinking the base the next is computed on
//  4. equal splits divide whatever remainder is left
//
// When no equal splits exist, any leftover remainder is not assigned to
// anyone. Fixed amounts exceeding the item price push the remainder negative;
// that is accepted input, not an error. Validation of split values happens
// upstream, before splits reach the engine.
func Allocate(item domain.Item, splits []domain.Split) map[uuid.UUID]float64 {
	shares := make(map[uuid.UUID]float64)
	remaining := item.Price

	for _, s := range splits {
		if s.Type != domain.SplitFixed {
			continue
		}
		shares[s.ParticipantID] += s.Value
		remaining -= s.Value
	}

	if item.Quantity > 0 {
		unitPrice := item.Price / float64(item.Quantity)
		for _, s := range splits {
			if s.Type != domain.SplitQuantity {
				continue
			}
			amount := unitPrice * s.Value
			shares[s.ParticipantID] += amount
			remaining -= amount
		}
	}

	for _, s := range splits {
		if s.Type != domain.SplitPercent {
			continue
		}
		amount := remaining * s.Value / 100
		shares[s.ParticipantID] += amount
		remaining -= amount
	}

	equalCount := 0
	for _, s := range splits {
		if s.Type == domain.SplitEqual {
			equalCount++
		}
	}
	if equalCount > 0 {
		share := remaining / float64(equalCount)
		for _, s := range splits {
			if s.Type == domain.SplitEqual {
				shares[s.ParticipantID] += share
			}
		}
	}

	return shares
}
