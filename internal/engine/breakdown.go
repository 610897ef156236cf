package engine

import (
	"github.com/google/uuid"

	"splittab/internal/domain"
)

// ParticipantBreakdown lists, item by item, how one participant's total was
// reached: every regular item they hold a split on, plus every tax/charge
// item whose distribution includes them. Amounts come from the same allocator
// and distributor the settlement summary uses.
func ParticipantBreakdown(snap *domain.BillSnapshot, participantID uuid.UUID) (*domain.ParticipantBreakdown, error) {
	p := snap.Participant(participantID)
	if p == nil {
		return nil, domain.ErrNotFound
	}

	breakdown := &domain.ParticipantBreakdown{
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
		CurrencySymbol:  snap.Bill.CurrencySymbol,
		Items:           []domain.BreakdownLine{},
	}

	var total float64
	for _, sr := range snap.Receipts {
		for _, ri := range sr.Items {
			var shares map[uuid.UUID]float64
			if ri.Item.IsTaxOrCharge {
				shares = DistributeCharge(ri, sr.Items)
			} else {
				shares = Allocate(ri.Item, ri.Splits)
			}
			amount, ok := shares[participantID]
			if !ok {
				continue
			}

			line := domain.BreakdownLine{
				ItemName:      ri.Item.Name,
				ItemPrice:     round2(ri.Item.Price),
				IsTaxOrCharge: ri.Item.IsTaxOrCharge,
				ChargeType:    ri.Item.ChargeType,
				Quantity:      ri.Item.Quantity,
				UnitPrice:     ri.Item.UnitPrice,
				Amount:        round2(amount),
			}
			if s := splitFor(ri.Splits, participantID); s != nil {
				line.SplitType = s.Type
				line.SplitValue = s.Value
			}
			breakdown.Items = append(breakdown.Items, line)
			total += amount
		}
	}

	breakdown.Total = round2(total)
	return breakdown, nil
}

// ReceiptBreakdown echoes the raw split configuration of every item on one
// receipt for audit display. It computes no allocation amounts.
func ReceiptBreakdown(snap *domain.BillSnapshot, receiptID uuid.UUID) (*domain.ReceiptBreakdown, error) {
	var sr *domain.SnapshotReceipt
	for i := range snap.Receipts {
		if snap.Receipts[i].Receipt.ID == receiptID {
			sr = &snap.Receipts[i]
			break
		}
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}

	breakdown := &domain.ReceiptBreakdown{
		ReceiptID: receiptID,
		Items:     make([]domain.ReceiptBreakdownItem, 0, len(sr.Items)),
	}

	var total float64
	for _, ri := range sr.Items {
		entry := domain.ReceiptBreakdownItem{
			ID:            ri.Item.ID,
			Name:          ri.Item.Name,
			Price:         round2(ri.Item.Price),
			Quantity:      ri.Item.Quantity,
			UnitPrice:     ri.Item.UnitPrice,
			IsTaxOrCharge: ri.Item.IsTaxOrCharge,
			Assignees:     make([]domain.ReceiptAssignee, 0, len(ri.Splits)),
		}
		if ri.TaxDistribution != nil {
			dt := ri.TaxDistribution.Type
			entry.TaxDistribution = &dt
		}
		for _, s := range ri.Splits {
			name := ""
			if p := snap.Participant(s.ParticipantID); p != nil {
				name = p.Name
			}
			entry.Assignees = append(entry.Assignees, domain.ReceiptAssignee{
				ParticipantID:   s.ParticipantID,
				ParticipantName: name,
				SplitType:       s.Type,
				Value:           s.Value,
			})
		}
		breakdown.Items = append(breakdown.Items, entry)
		total += ri.Item.Price
	}
	breakdown.Total = round2(total)

	for _, pay := range snap.Payments {
		if pay.ReceiptID != nil && *pay.ReceiptID == receiptID {
			payerID := pay.PayerID
			breakdown.PayerID = &payerID
			if p := snap.Participant(payerID); p != nil {
				breakdown.Payer = p.Name
			}
			break
		}
	}

	return breakdown, nil
}

func splitFor(splits []domain.Split, participantID uuid.UUID) *domain.Split {
	for i := range splits {
		if splits[i].ParticipantID == participantID {
			return &splits[i]
		}
	}
	return nil
}
