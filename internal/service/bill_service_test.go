package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"splittab/internal/config"
	"splittab/internal/domain"
	"splittab/internal/service"
	"splittab/mocks"
)

var testBillCfg = config.BillConfig{ExpiryDays: 7, DefaultCurrency: "$"}

var testTokenCfg = config.TokenConfig{
	Secret: "test-secret",
	Expiry: 240 * time.Hour,
	Issuer: "splittab-test",
}

type billServiceMocks struct {
	billRepo        *mocks.MockBillRepo
	receiptRepo     *mocks.MockReceiptRepo
	itemRepo        *mocks.MockItemRepo
	participantRepo *mocks.MockParticipantRepo
	paymentRepo     *mocks.MockPaymentRepo
	snapshotRepo    *mocks.MockSnapshotRepo
}

func newBillService() (service.BillService, *billServiceMocks) {
	m := &billServiceMocks{
		billRepo:        new(mocks.MockBillRepo),
		receiptRepo:     new(mocks.MockReceiptRepo),
		itemRepo:        new(mocks.MockItemRepo),
		participantRepo: new(mocks.MockParticipantRepo),
		paymentRepo:     new(mocks.MockPaymentRepo),
		snapshotRepo:    new(mocks.MockSnapshotRepo),
	}
	tokens := service.NewTokenService(testTokenCfg)
	svc := service.NewBillService(
		m.billRepo, m.receiptRepo, m.itemRepo, m.participantRepo,
		m.paymentRepo, m.snapshotRepo, tokens, testBillCfg)
	return svc, m
}

func TestBillCreate_Success(t *testing.T) {
	svc, m := newBillService()

	m.billRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).Return(nil)
	m.participantRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Participant")).Return(nil).Times(2)

	created, err := svc.Create(context.Background(), service.CreateBillInput{
		Title:        "Friday dinner",
		Participants: []string{"Ana", "Bea"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Friday dinner", created.Bill.Title)
	assert.Equal(t, "$", created.Bill.CurrencySymbol, "default currency applied")
	assert.Equal(t, domain.BillModeSingle, created.Bill.Mode)
	assert.NotEmpty(t, created.EditToken)
	require.Len(t, created.Participants, 2)
	assert.Equal(t, "Ana", created.Participants[0].Name)

	wantExpiry := created.Bill.CreatedAt.AddDate(0, 0, 7)
	assert.WithinDuration(t, wantExpiry, created.Bill.ExpiresAt, time.Second)

	m.billRepo.AssertExpectations(t)
	m.participantRepo.AssertExpectations(t)
}

func TestBillCreate_InvalidMode(t *testing.T) {
	svc, _ := newBillService()

	_, err := svc.Create(context.Background(), service.CreateBillInput{
		Title:        "dinner",
		Mode:         "triple",
		Participants: []string{"Ana"},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidBillMode)
}

func TestBillCreate_EditTokenIsScopedToBill(t *testing.T) {
	svc, m := newBillService()

	m.billRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.participantRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), service.CreateBillInput{
		Title:        "dinner",
		Participants: []string{"Ana"},
	})
	require.NoError(t, err)

	tokens := service.NewTokenService(testTokenCfg)
	claims, err := tokens.ValidateEditToken(created.EditToken)
	require.NoError(t, err)
	assert.Equal(t, created.Bill.ID, claims.BillID)
}

func TestBillGet_Expired(t *testing.T) {
	svc, m := newBillService()
	billID := uuid.New()

	snap := &domain.BillSnapshot{
		Bill: domain.Bill{
			ID:        billID,
			ExpiresAt: time.Now().Add(-time.Hour),
		},
	}
	m.snapshotRepo.On("GetBillSnapshot", mock.Anything, billID).Return(snap, nil)

	_, err := svc.Get(context.Background(), billID)

	assert.ErrorIs(t, err, domain.ErrBillExpired)
}

func TestBillGet_NotFound(t *testing.T) {
	svc, m := newBillService()
	billID := uuid.New()

	m.snapshotRepo.On("GetBillSnapshot", mock.Anything, billID).Return(nil, domain.ErrNotFound)

	_, err := svc.Get(context.Background(), billID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBillAddPayment_ReceiptScopedReplaces(t *testing.T) {
	svc, m := newBillService()
	billID, payerID, receiptID := uuid.New(), uuid.New(), uuid.New()

	m.participantRepo.On("GetByID", mock.Anything, billID, payerID).
		Return(&domain.Participant{ID: payerID, BillID: billID, Name: "Ana"}, nil)
	m.receiptRepo.On("GetByID", mock.Anything, billID, receiptID).
		Return(&domain.Receipt{ID: receiptID, BillID: billID}, nil)
	m.paymentRepo.On("ReplaceForReceipt", mock.Anything, billID, receiptID, mock.AnythingOfType("*domain.Payment")).
		Return(nil)

	payment, err := svc.AddPayment(context.Background(), billID, service.AddPaymentInput{
		PayerID:   payerID,
		Amount:    120,
		ReceiptID: &receiptID,
	})
	require.NoError(t, err)

	require.NotNil(t, payment.ReceiptID)
	assert.Equal(t, receiptID, *payment.ReceiptID)
	m.paymentRepo.AssertExpectations(t)
	m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillAddPayment_UnknownPayer(t *testing.T) {
	svc, m := newBillService()
	billID, payerID := uuid.New(), uuid.New()

	m.participantRepo.On("GetByID", mock.Anything, billID, payerID).Return(nil, domain.ErrNotFound)

	_, err := svc.AddPayment(context.Background(), billID, service.AddPaymentInput{
		PayerID: payerID,
		Amount:  50,
	})

	assert.ErrorIs(t, err, domain.ErrParticipantNotOnBill)
}

func TestBillAddPayment_ReceiptFromOtherBill(t *testing.T) {
	svc, m := newBillService()
	billID, payerID, receiptID := uuid.New(), uuid.New(), uuid.New()

	m.participantRepo.On("GetByID", mock.Anything, billID, payerID).
		Return(&domain.Participant{ID: payerID}, nil)
	m.receiptRepo.On("GetByID", mock.Anything, billID, receiptID).Return(nil, domain.ErrNotFound)

	_, err := svc.AddPayment(context.Background(), billID, service.AddPaymentInput{
		PayerID:   payerID,
		Amount:    50,
		ReceiptID: &receiptID,
	})

	assert.ErrorIs(t, err, domain.ErrReceiptNotOnBill)
}

func TestBillDuplicate_RemapsEverything(t *testing.T) {
	svc, m := newBillService()

	billID := uuid.New()
	receiptID := uuid.New()
	ana := domain.Participant{ID: uuid.New(), BillID: billID, Name: "Ana"}
	bea := domain.Participant{ID: uuid.New(), BillID: billID, Name: "Bea"}

	snap := &domain.BillSnapshot{
		Bill: domain.Bill{
			ID: billID, Title: "dinner", CurrencySymbol: "€", Mode: domain.BillModeMulti,
			ExpiresAt: time.Now().Add(-time.Hour), // expired bills can still be duplicated
		},
		Participants: []domain.Participant{ana, bea},
		Receipts: []domain.SnapshotReceipt{
			{
				Receipt: domain.Receipt{ID: receiptID, BillID: billID},
				Items: []domain.ReceiptItem{
					{
						Item: domain.Item{ID: uuid.New(), ReceiptID: receiptID, Name: "main", Price: 40, Quantity: 1},
						Splits: []domain.Split{
							{ID: uuid.New(), ParticipantID: ana.ID, Type: domain.SplitEqual},
							{ID: uuid.New(), ParticipantID: bea.ID, Type: domain.SplitEqual},
						},
					},
				},
			},
		},
		Payments: []domain.Payment{
			{ID: uuid.New(), BillID: billID, PayerID: ana.ID, Amount: 40, ReceiptID: &receiptID},
		},
	}
	m.snapshotRepo.On("GetBillSnapshot", mock.Anything, billID).Return(snap, nil)

	var newBill *domain.Bill
	m.billRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).
		Run(func(args mock.Arguments) { newBill = args.Get(1).(*domain.Bill) }).Return(nil)

	newParticipants := make(map[uuid.UUID]string)
	m.participantRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Participant")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Participant)
			newParticipants[p.ID] = p.Name
		}).Return(nil)

	var newReceipt *domain.Receipt
	m.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) { newReceipt = args.Get(1).(*domain.Receipt) }).Return(nil)

	var newSplits []domain.Split
	m.itemRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Item"), mock.Anything).
		Run(func(args mock.Arguments) { newSplits = args.Get(2).([]domain.Split) }).Return(nil)

	var newPayment *domain.Payment
	m.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).
		Run(func(args mock.Arguments) { newPayment = args.Get(1).(*domain.Payment) }).Return(nil)

	created, err := svc.Duplicate(context.Background(), billID)
	require.NoError(t, err)

	assert.Equal(t, "dinner (Copy)", created.Bill.Title)
	assert.Equal(t, "€", created.Bill.CurrencySymbol)
	assert.NotEqual(t, billID, created.Bill.ID)
	assert.True(t, created.Bill.ExpiresAt.After(time.Now()), "copy gets a fresh expiry")
	assert.NotEmpty(t, created.EditToken)

	require.NotNil(t, newBill)
	require.NotNil(t, newReceipt)
	assert.Equal(t, newBill.ID, newReceipt.BillID)

	require.Len(t, newSplits, 2)
	for _, s := range newSplits {
		assert.NotEqual(t, ana.ID, s.ParticipantID)
		assert.NotEqual(t, bea.ID, s.ParticipantID)
		assert.Contains(t, newParticipants, s.ParticipantID, "splits point at the copied participants")
	}

	require.NotNil(t, newPayment)
	require.NotNil(t, newPayment.ReceiptID)
	assert.Equal(t, newReceipt.ID, *newPayment.ReceiptID, "payment follows the copied receipt")
	assert.Contains(t, newParticipants, newPayment.PayerID)
}
