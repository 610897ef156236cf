package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Bill represents a shared bill, the root of the settlement graph.
type Bill struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	CurrencySymbol string    `db:"currency_symbol" json:"currency_symbol"`
	Mode           BillMode  `db:"mode" json:"mode"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	ExpiresAt      time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the bill is past its expiry timestamp.
func (b *Bill) Expired(now time.Time) bool {
	return now.After(b.ExpiresAt)
}

// Receipt represents one receipt attached to a bill.
type Receipt struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BillID    uuid.UUID `db:"bill_id" json:"bill_id"`
	ImageRef  *string   `db:"image_ref" json:"image_ref"`
	OCRData   *string   `db:"ocr_data" json:"ocr_data"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Item represents one line on a receipt. Price is the line total, not per unit.
type Item struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	ReceiptID     uuid.UUID   `db:"receipt_id" json:"receipt_id"`
	Name          string      `db:"name" json:"name"`
	Price         float64     `db:"price" json:"price"`
	IsTaxOrCharge bool        `db:"is_tax_or_charge" json:"is_tax_or_charge"`
	ChargeType    *ChargeType `db:"charge_type" json:"charge_type"`
	ItemOrder     int         `db:"item_order" json:"item_order"`
	Quantity      int         `db:"quantity" json:"quantity"`
	UnitPrice     *float64    `db:"unit_price" json:"unit_price"`
}

// Split assigns part of an item's cost to one participant. The meaning of
// Value depends on Type: ignored for equal, a currency amount for fixed, a
// percentage for percent, a unit count for quantity.
type Split struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ItemID        uuid.UUID `db:"item_id" json:"item_id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	Type          SplitType `db:"split_type" json:"split_type"`
	Value         float64   `db:"value" json:"value"`
}

// TaxDistribution configures how a tax/charge item is allocated. One per item.
type TaxDistribution struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	ItemID     uuid.UUID        `db:"item_id" json:"item_id"`
	Type       DistributionType `db:"distribution_type" json:"distribution_type"`
	CustomData json.RawMessage  `db:"custom_data" json:"custom_data,omitempty"`
}

// CustomAmounts decodes the custom per-participant mapping. Returns an empty
// map when no custom data is stored or it does not decode.
func (d *TaxDistribution) CustomAmounts() map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64)
	if len(d.CustomData) == 0 {
		return out
	}
	var raw map[string]float64
	if err := json.Unmarshal(d.CustomData, &raw); err != nil {
		return out
	}
	for k, v := range raw {
		id, err := uuid.Parse(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

// Participant represents one person on a bill.
type Participant struct {
	ID     uuid.UUID `db:"id" json:"id"`
	BillID uuid.UUID `db:"bill_id" json:"bill_id"`
	Name   string    `db:"name" json:"name"`
}

// Payment records money a participant has already paid toward the bill.
// ReceiptID scopes the payment to one receipt in multi-receipt bills; nil
// means a bill-wide payment.
type Payment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	BillID    uuid.UUID  `db:"bill_id" json:"bill_id"`
	PayerID   uuid.UUID  `db:"payer_id" json:"payer_id"`
	Amount    float64    `db:"amount" json:"amount"`
	ReceiptID *uuid.UUID `db:"receipt_id" json:"receipt_id"`
}

// PaymentDetail stores a participant's payout account (bank, e-wallet, ...).
type PaymentDetail struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	ProviderName  string    `db:"provider_name" json:"provider_name"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	IsPrimary     bool      `db:"is_primary" json:"is_primary"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ReceiptItem pairs an item with its splits and optional tax distribution.
type ReceiptItem struct {
	Item            Item             `json:"item"`
	Splits          []Split          `json:"splits"`
	TaxDistribution *TaxDistribution `json:"tax_distribution,omitempty"`
}

// SnapshotReceipt is one receipt with its items in display order.
type SnapshotReceipt struct {
	Receipt Receipt       `json:"receipt"`
	Items   []ReceiptItem `json:"items"`
}

// BillSnapshot is the fully materialized, read-only view of a bill that the
// settlement engine computes over. Assembled in a single transaction so the
// engine never observes a torn graph.
type BillSnapshot struct {
	Bill         Bill              `json:"bill"`
	Receipts     []SnapshotReceipt `json:"receipts"`
	Participants []Participant     `json:"participants"`
	Payments     []Payment         `json:"payments"`
}

// Participant returns the participant with the given id, or nil.
func (s *BillSnapshot) Participant(id uuid.UUID) *Participant {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return &s.Participants[i]
		}
	}
	return nil
}

// ParticipantStanding is one participant's line in the settlement summary.
// Balance is paid minus owes: positive means others owe them.
type ParticipantStanding struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Owes    float64   `json:"owes"`
	Paid    float64   `json:"paid"`
	Balance float64   `json:"balance"`
}

// Transfer is a single proposed payment from one participant to another.
type Transfer struct {
	FromID uuid.UUID `json:"from_id"`
	From   string    `json:"from"`
	ToID   uuid.UUID `json:"to_id"`
	To     string    `json:"to"`
	Amount float64   `json:"amount"`
}

// SettlementSummary is the full settlement result for a bill.
type SettlementSummary struct {
	BillID               uuid.UUID             `json:"bill_id"`
	CurrencySymbol       string                `json:"currency_symbol"`
	Participants         []ParticipantStanding `json:"participants"`
	RawDebts             []Transfer            `json:"raw_debts"`
	OptimizedSettlements []Transfer            `json:"optimized_settlements"`
}

// BreakdownLine is one item's contribution to a participant's total.
// SplitType is empty for tax/charge shares the participant never explicitly
// split (proportional and custom distributions).
type BreakdownLine struct {
	ItemName      string      `json:"item_name"`
	ItemPrice     float64     `json:"item_price"`
	IsTaxOrCharge bool        `json:"is_tax_or_charge"`
	ChargeType    *ChargeType `json:"charge_type,omitempty"`
	SplitType     SplitType   `json:"split_type,omitempty"`
	SplitValue    float64     `json:"split_value"`
	Quantity      int         `json:"quantity"`
	UnitPrice     *float64    `json:"unit_price"`
	Amount        float64     `json:"amount"`
}

// ParticipantBreakdown lists everything one participant owes, item by item.
type ParticipantBreakdown struct {
	ParticipantID   uuid.UUID       `json:"participant_id"`
	ParticipantName string          `json:"participant_name"`
	CurrencySymbol  string          `json:"currency_symbol"`
	Items           []BreakdownLine `json:"items"`
	Total           float64         `json:"total"`
}

// ReceiptAssignee echoes one raw split assignment for display.
type ReceiptAssignee struct {
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	SplitType       SplitType `json:"split_type"`
	Value           float64   `json:"value"`
}

// ReceiptBreakdownItem is one item with its full assignee list.
type ReceiptBreakdownItem struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Price           float64           `json:"price"`
	Quantity        int               `json:"quantity"`
	UnitPrice       *float64          `json:"unit_price"`
	IsTaxOrCharge   bool              `json:"is_tax_or_charge"`
	Assignees       []ReceiptAssignee `json:"assignees"`
	TaxDistribution *DistributionType `json:"tax_distribution,omitempty"`
}

// ReceiptBreakdown is the display-oriented audit view of one receipt. It does
// not compute amounts; it echoes the raw split configuration per item.
type ReceiptBreakdown struct {
	ReceiptID uuid.UUID              `json:"receipt_id"`
	Items     []ReceiptBreakdownItem `json:"items"`
	Total     float64                `json:"total"`
	PayerID   *uuid.UUID             `json:"payer_id"`
	Payer     string                 `json:"payer,omitempty"`
}
