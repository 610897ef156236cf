package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"splittab/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Create(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReceiptRepo is a mock implementation of port.ReceiptRepository.
type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) Create(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepo) GetByID(ctx context.Context, billID, receiptID uuid.UUID) (*domain.Receipt, error) {
	args := m.Called(ctx, billID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Receipt, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) Delete(ctx context.Context, billID, receiptID uuid.UUID) error {
	args := m.Called(ctx, billID, receiptID)
	return args.Error(0)
}

// MockItemRepo is a mock implementation of port.ItemRepository.
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item, splits []domain.Split) error {
	args := m.Called(ctx, item, splits)
	return args.Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, receiptID, itemID uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, receiptID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) Delete(ctx context.Context, receiptID, itemID uuid.UUID) error {
	args := m.Called(ctx, receiptID, itemID)
	return args.Error(0)
}

func (m *MockItemRepo) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptItem), args.Error(1)
}

func (m *MockItemRepo) ReplaceSplits(ctx context.Context, itemID uuid.UUID, splits []domain.Split) error {
	args := m.Called(ctx, itemID, splits)
	return args.Error(0)
}

func (m *MockItemRepo) UpsertTaxDistribution(ctx context.Context, dist *domain.TaxDistribution) error {
	args := m.Called(ctx, dist)
	return args.Error(0)
}

// MockParticipantRepo is a mock implementation of port.ParticipantRepository.
type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) Create(ctx context.Context, participant *domain.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepo) GetByID(ctx context.Context, billID, participantID uuid.UUID) (*domain.Participant, error) {
	args := m.Called(ctx, billID, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *MockParticipantRepo) Delete(ctx context.Context, billID, participantID uuid.UUID) error {
	args := m.Called(ctx, billID, participantID)
	return args.Error(0)
}

// MockPaymentRepo is a mock implementation of port.PaymentRepository.
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Payment, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) ReplaceForReceipt(ctx context.Context, billID, receiptID uuid.UUID, payment *domain.Payment) error {
	args := m.Called(ctx, billID, receiptID, payment)
	return args.Error(0)
}

// MockPaymentDetailRepo is a mock implementation of port.PaymentDetailRepository.
type MockPaymentDetailRepo struct {
	mock.Mock
}

func (m *MockPaymentDetailRepo) Create(ctx context.Context, detail *domain.PaymentDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockPaymentDetailRepo) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.PaymentDetail, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentDetail), args.Error(1)
}

func (m *MockPaymentDetailRepo) SetPrimary(ctx context.Context, participantID, detailID uuid.UUID) error {
	args := m.Called(ctx, participantID, detailID)
	return args.Error(0)
}

func (m *MockPaymentDetailRepo) Delete(ctx context.Context, participantID, detailID uuid.UUID) error {
	args := m.Called(ctx, participantID, detailID)
	return args.Error(0)
}

// MockSnapshotRepo is a mock implementation of port.SnapshotRepository.
type MockSnapshotRepo struct {
	mock.Mock
}

func (m *MockSnapshotRepo) GetBillSnapshot(ctx context.Context, billID uuid.UUID) (*domain.BillSnapshot, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillSnapshot), args.Error(1)
}
