package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splittab/internal/config"
	"splittab/internal/domain"
	"splittab/internal/port"
)

// CreateBillInput is the DTO for bill creation requests.
type CreateBillInput struct {
	Title          string   `json:"title" binding:"required,max=200"`
	CurrencySymbol string   `json:"currency_symbol" binding:"max=8"`
	Mode           string   `json:"mode"`
	Participants   []string `json:"participants" binding:"required,min=1,dive,required,max=100"`
}

// CreatedBill is the result of creating or duplicating a bill. EditToken is
// only ever returned here; afterwards the caller must present it to mutate
// the bill.
type CreatedBill struct {
	Bill         domain.Bill          `json:"bill"`
	Participants []domain.Participant `json:"participants"`
	EditToken    string               `json:"edit_token"`
}

// AddPaymentInput is the DTO for recording a payment.
type AddPaymentInput struct {
	PayerID   uuid.UUID  `json:"payer_id" binding:"required"`
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	ReceiptID *uuid.UUID `json:"receipt_id"`
}

// BillService manages bill lifecycle: creation, retrieval, duplication,
// participants, and payments.
type BillService interface {
	Create(ctx context.Context, input CreateBillInput) (*CreatedBill, error)
	Get(ctx context.Context, billID uuid.UUID) (*domain.BillSnapshot, error)
	Duplicate(ctx context.Context, billID uuid.UUID) (*CreatedBill, error)
	AddParticipant(ctx context.Context, billID uuid.UUID, name string) (*domain.Participant, error)
	AddPayment(ctx context.Context, billID uuid.UUID, input AddPaymentInput) (*domain.Payment, error)
}

type billService struct {
	billRepo        port.BillRepository
	receiptRepo     port.ReceiptRepository
	itemRepo        port.ItemRepository
	participantRepo port.ParticipantRepository
	paymentRepo     port.PaymentRepository
	snapshotRepo    port.SnapshotRepository
	tokens          TokenService
	cfg             config.BillConfig
}

// NewBillService creates a new BillService implementation.
func NewBillService(
	billRepo port.BillRepository,
	receiptRepo port.ReceiptRepository,
	itemRepo port.ItemRepository,
	participantRepo port.ParticipantRepository,
	paymentRepo port.PaymentRepository,
	snapshotRepo port.SnapshotRepository,
	tokens TokenService,
	cfg config.BillConfig,
) BillService {
	return &billService{
		billRepo:        billRepo,
		receiptRepo:     receiptRepo,
		itemRepo:        itemRepo,
		participantRepo: participantRepo,
		paymentRepo:     paymentRepo,
		snapshotRepo:    snapshotRepo,
		tokens:          tokens,
		cfg:             cfg,
	}
}

func (s *billService) Create(ctx context.Context, input CreateBillInput) (*CreatedBill, error) {
	mode := domain.BillMode(input.Mode)
	if input.Mode == "" {
		mode = domain.BillModeSingle
	}
	if !domain.ValidBillModes[mode] {
		return nil, domain.ErrInvalidBillMode
	}

	currency := input.CurrencySymbol
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	now := time.Now().UTC()
	bill := &domain.Bill{
		ID:             uuid.New(),
		Title:          input.Title,
		CurrencySymbol: currency,
		Mode:           mode,
		CreatedAt:      now,
		ExpiresAt:      now.AddDate(0, 0, s.cfg.ExpiryDays),
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("bill.Create: %w", err)
	}

	participants := make([]domain.Participant, 0, len(input.Participants))
	for _, name := range input.Participants {
		p := domain.Participant{ID: uuid.New(), BillID: bill.ID, Name: name}
		if err := s.participantRepo.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("bill.Create participant: %w", err)
		}
		participants = append(participants, p)
	}

	token, err := s.tokens.IssueEditToken(bill.ID)
	if err != nil {
		return nil, fmt.Errorf("bill.Create token: %w", err)
	}

	return &CreatedBill{Bill: *bill, Participants: participants, EditToken: token}, nil
}

func (s *billService) Get(ctx context.Context, billID uuid.UUID) (*domain.BillSnapshot, error) {
	snap, err := s.snapshotRepo.GetBillSnapshot(ctx, billID)
	if err != nil {
		return nil, err
	}
	if snap.Bill.Expired(time.Now().UTC()) {
		return nil, domain.ErrBillExpired
	}
	return snap, nil
}

// Duplicate deep-copies a bill under fresh identifiers: participants,
// receipts, items, splits, tax distributions, and payments all come across
// with their references remapped. Expired bills can still be duplicated; the
// copy gets a fresh expiry window.
func (s *billService) Duplicate(ctx context.Context, billID uuid.UUID) (*CreatedBill, error) {
	snap, err := s.snapshotRepo.GetBillSnapshot(ctx, billID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill := &domain.Bill{
		ID:             uuid.New(),
		Title:          snap.Bill.Title + " (Copy)",
		CurrencySymbol: snap.Bill.CurrencySymbol,
		Mode:           snap.Bill.Mode,
		CreatedAt:      now,
		ExpiresAt:      now.AddDate(0, 0, s.cfg.ExpiryDays),
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("bill.Duplicate: %w", err)
	}

	participantMap := make(map[uuid.UUID]uuid.UUID, len(snap.Participants))
	participants := make([]domain.Participant, 0, len(snap.Participants))
	for _, old := range snap.Participants {
		p := domain.Participant{ID: uuid.New(), BillID: bill.ID, Name: old.Name}
		participantMap[old.ID] = p.ID
		if err := s.participantRepo.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("bill.Duplicate participant: %w", err)
		}
		participants = append(participants, p)
	}

	receiptMap := make(map[uuid.UUID]uuid.UUID, len(snap.Receipts))
	for _, sr := range snap.Receipts {
		receipt := domain.Receipt{
			ID:        uuid.New(),
			BillID:    bill.ID,
			ImageRef:  sr.Receipt.ImageRef,
			OCRData:   sr.Receipt.OCRData,
			CreatedAt: now,
		}
		receiptMap[sr.Receipt.ID] = receipt.ID
		if err := s.receiptRepo.Create(ctx, &receipt); err != nil {
			return nil, fmt.Errorf("bill.Duplicate receipt: %w", err)
		}

		for _, ri := range sr.Items {
			item := ri.Item
			item.ID = uuid.New()
			item.ReceiptID = receipt.ID

			splits := make([]domain.Split, 0, len(ri.Splits))
			for _, old := range ri.Splits {
				newPID, ok := participantMap[old.ParticipantID]
				if !ok {
					continue
				}
				splits = append(splits, domain.Split{
					ID:            uuid.New(),
					ItemID:        item.ID,
					ParticipantID: newPID,
					Type:          old.Type,
					Value:         old.Value,
				})
			}
			if err := s.itemRepo.Create(ctx, &item, splits); err != nil {
				return nil, fmt.Errorf("bill.Duplicate item: %w", err)
			}

			if ri.TaxDistribution != nil {
				dist := &domain.TaxDistribution{
					ID:         uuid.New(),
					ItemID:     item.ID,
					Type:       ri.TaxDistribution.Type,
					CustomData: remapCustomData(ri.TaxDistribution, participantMap),
				}
				if err := s.itemRepo.UpsertTaxDistribution(ctx, dist); err != nil {
					return nil, fmt.Errorf("bill.Duplicate distribution: %w", err)
				}
			}
		}
	}

	for _, old := range snap.Payments {
		newPayerID, ok := participantMap[old.PayerID]
		if !ok {
			continue
		}
		payment := domain.Payment{
			ID:      uuid.New(),
			BillID:  bill.ID,
			PayerID: newPayerID,
			Amount:  old.Amount,
		}
		if old.ReceiptID != nil {
			if newRID, ok := receiptMap[*old.ReceiptID]; ok {
				payment.ReceiptID = &newRID
			}
		}
		if err := s.paymentRepo.Create(ctx, &payment); err != nil {
			return nil, fmt.Errorf("bill.Duplicate payment: %w", err)
		}
	}

	token, err := s.tokens.IssueEditToken(bill.ID)
	if err != nil {
		return nil, fmt.Errorf("bill.Duplicate token: %w", err)
	}
	return &CreatedBill{Bill: *bill, Participants: participants, EditToken: token}, nil
}

func (s *billService) AddParticipant(ctx context.Context, billID uuid.UUID, name string) (*domain.Participant, error) {
	if _, err := s.billRepo.GetByID(ctx, billID); err != nil {
		return nil, err
	}
	p := &domain.Participant{ID: uuid.New(), BillID: billID, Name: name}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("bill.AddParticipant: %w", err)
	}
	return p, nil
}

func (s *billService) AddPayment(ctx context.Context, billID uuid.UUID, input AddPaymentInput) (*domain.Payment, error) {
	if _, err := s.participantRepo.GetByID(ctx, billID, input.PayerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotOnBill
		}
		return nil, err
	}

	payment := &domain.Payment{
		ID:      uuid.New(),
		BillID:  billID,
		PayerID: input.PayerID,
		Amount:  input.Amount,
	}

	if input.ReceiptID != nil {
		if _, err := s.receiptRepo.GetByID(ctx, billID, *input.ReceiptID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrReceiptNotOnBill
			}
			return nil, err
		}
		payment.ReceiptID = input.ReceiptID
		// One payer per receipt: recording a payment replaces any earlier
		// payment scoped to the same receipt.
		if err := s.paymentRepo.ReplaceForReceipt(ctx, billID, *input.ReceiptID, payment); err != nil {
			return nil, fmt.Errorf("bill.AddPayment: %w", err)
		}
		return payment, nil
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("bill.AddPayment: %w", err)
	}
	return payment, nil
}

// remapCustomData rewrites a custom distribution's participant keys to the
// duplicated bill's participant ids. Entries for unknown participants drop.
func remapCustomData(dist *domain.TaxDistribution, participantMap map[uuid.UUID]uuid.UUID) json.RawMessage {
	if len(dist.CustomData) == 0 {
		return nil
	}
	amounts := dist.CustomAmounts()
	remapped := make(map[string]float64, len(amounts))
	for oldID, amount := range amounts {
		if newID, ok := participantMap[oldID]; ok {
			remapped[newID.String()] = amount
		}
	}
	data, err := json.Marshal(remapped)
	if err != nil {
		return nil
	}
	return data
}
