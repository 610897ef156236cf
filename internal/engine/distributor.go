package engine

import (
	"github.com/google/uuid"

	"splittab/internal/domain"
)

// DistributeCharge computes each participant's share of a tax or service
// charge item according to its distribution policy.
//
// siblings is the full item list of the same receipt; only regular
// (non-charge) items contribute proportional weights. A missing
// TaxDistribution record falls back to proportional distribution.
func DistributeCharge(charge domain.ReceiptItem, siblings []domain.ReceiptItem) map[uuid.UUID]float64 {
	dist := charge.TaxDistribution

	if dist != nil {
		switch dist.Type {
		case domain.DistributionNone:
			return map[uuid.UUID]float64{}
		case domain.DistributionCustom:
			return dist.CustomAmounts()
		case domain.DistributionEqual:
			// The charge item's own splits describe the division; run them
			// through the ordinary allocator.
			return Allocate(charge.Item, charge.Splits)
		}
	}

	return distributeProportional(charge.Item, siblings)
}

// distributeProportional splits a charge across participants in proportion to
// what each one owes on the receipt's regular items.
func distributeProportional(charge domain.Item, siblings []domain.ReceiptItem) map[uuid.UUID]float64 {
	weights, total := subtotalWeights(siblings)

	shares := make(map[uuid.UUID]float64)
	if total <= 0 {
		return shares
	}
	for id, w := range weights {
		if w <= 0 {
			continue
		}
		shares[id] = charge.Price * w / total
	}
	return shares
}

// subtotalWeights re-runs the allocator over every regular item and sums each
// participant's allocation into a weight. Both the settlement totals and the
// single-participant breakdown derive tax shares from this one function, so
// the two views cannot disagree.
func subtotalWeights(items []domain.ReceiptItem) (map[uuid.UUID]float64, float64) {
	weights := make(map[uuid.UUID]float64)
	var total float64

	for _, ri := range items {
		if ri.Item.IsTaxOrCharge {
			continue
		}
		for id, amount := range Allocate(ri.Item, ri.Splits) {
			weights[id] += amount
			total += amount
		}
	}
	return weights, total
}
