package port

import (
	"context"

	"github.com/google/uuid"

	"splittab/internal/domain"
)

// BillRepository defines the contract for bill persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReceiptRepository defines the contract for receipt persistence.
// All query methods include billID so a receipt can never be addressed
// through the wrong bill.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	GetByID(ctx context.Context, billID, receiptID uuid.UUID) (*domain.Receipt, error)
	ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Receipt, error)
	Delete(ctx context.Context, billID, receiptID uuid.UUID) error
}

// ItemRepository defines the contract for item, split, and tax distribution
// persistence. Splits and distributions live and die with their item.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item, splits []domain.Split) error
	GetByID(ctx context.Context, receiptID, itemID uuid.UUID) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, receiptID, itemID uuid.UUID) error
	ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]domain.ReceiptItem, error)
	ReplaceSplits(ctx context.Context, itemID uuid.UUID, splits []domain.Split) error
	UpsertTaxDistribution(ctx context.Context, dist *domain.TaxDistribution) error
}

// ParticipantRepository defines the contract for participant persistence.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	GetByID(ctx context.Context, billID, participantID uuid.UUID) (*domain.Participant, error)
	ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error)
	Delete(ctx context.Context, billID, participantID uuid.UUID) error
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Payment, error)
	// ReplaceForReceipt deletes every payment scoped to the receipt and
	// inserts the given one in the same transaction.
	ReplaceForReceipt(ctx context.Context, billID, receiptID uuid.UUID, payment *domain.Payment) error
}

// PaymentDetailRepository defines the contract for payout account persistence.
type PaymentDetailRepository interface {
	Create(ctx context.Context, detail *domain.PaymentDetail) error
	ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.PaymentDetail, error)
	// SetPrimary marks one detail primary and clears the flag on the
	// participant's others atomically.
	SetPrimary(ctx context.Context, participantID, detailID uuid.UUID) error
	Delete(ctx context.Context, participantID, detailID uuid.UUID) error
}

// SnapshotRepository assembles the full bill graph in a single transaction so
// the settlement engine never computes over a torn read.
type SnapshotRepository interface {
	GetBillSnapshot(ctx context.Context, billID uuid.UUID) (*domain.BillSnapshot, error)
}
