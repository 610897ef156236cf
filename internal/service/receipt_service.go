package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splittab/internal/domain"
	"splittab/internal/port"
)

// ItemInput is the DTO for creating or updating an item.
type ItemInput struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	IsTaxOrCharge bool     `json:"is_tax_or_charge"`
	ChargeType    *string  `json:"charge_type"`
	ItemOrder     int      `json:"item_order"`
	Quantity      int      `json:"quantity" binding:"gte=0"`
	UnitPrice     *float64 `json:"unit_price"`
}

// SplitInput is the DTO for one participant's split on an item.
type SplitInput struct {
	ParticipantID uuid.UUID `json:"participant_id" binding:"required"`
	Type          string    `json:"split_type" binding:"required"`
	Value         float64   `json:"value"`
}

// TaxDistributionInput is the DTO for setting an item's distribution policy.
type TaxDistributionInput struct {
	Type       string          `json:"distribution_type" binding:"required"`
	CustomData json.RawMessage `json:"custom_data"`
}

// ReceiptService manages receipts, their items, splits, and tax
// distributions. All split validation happens here so the engine can stay a
// pure function over trusted data.
type ReceiptService interface {
	AddReceipt(ctx context.Context, billID uuid.UUID, imageRef, ocrData *string) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, billID, receiptID uuid.UUID) error
	AddItem(ctx context.Context, billID, receiptID uuid.UUID, input ItemInput, splits []SplitInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, billID, receiptID, itemID uuid.UUID, input ItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, billID, receiptID, itemID uuid.UUID) error
	ReplaceSplits(ctx context.Context, billID, receiptID, itemID uuid.UUID, splits []SplitInput) error
	SetTaxDistribution(ctx context.Context, billID, receiptID, itemID uuid.UUID, input TaxDistributionInput) error
}

type receiptService struct {
	receiptRepo     port.ReceiptRepository
	itemRepo        port.ItemRepository
	participantRepo port.ParticipantRepository
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(
	receiptRepo port.ReceiptRepository,
	itemRepo port.ItemRepository,
	participantRepo port.ParticipantRepository,
) ReceiptService {
	return &receiptService{
		receiptRepo:     receiptRepo,
		itemRepo:        itemRepo,
		participantRepo: participantRepo,
	}
}

func (s *receiptService) AddReceipt(ctx context.Context, billID uuid.UUID, imageRef, ocrData *string) (*domain.Receipt, error) {
	receipt := &domain.Receipt{
		ID:        uuid.New(),
		BillID:    billID,
		ImageRef:  imageRef,
		OCRData:   ocrData,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("receipt.AddReceipt: %w", err)
	}
	return receipt, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, billID, receiptID uuid.UUID) error {
	return s.receiptRepo.Delete(ctx, billID, receiptID)
}

func (s *receiptService) AddItem(ctx context.Context, billID, receiptID uuid.UUID, input ItemInput, splits []SplitInput) (*domain.Item, error) {
	if _, err := s.receiptRepo.GetByID(ctx, billID, receiptID); err != nil {
		return nil, err
	}

	item, err := itemFromInput(receiptID, input)
	if err != nil {
		return nil, err
	}
	item.ID = uuid.New()

	domainSplits, err := s.validateSplits(ctx, billID, item, splits)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(ctx, item, domainSplits); err != nil {
		return nil, fmt.Errorf("receipt.AddItem: %w", err)
	}
	return item, nil
}

func (s *receiptService) UpdateItem(ctx context.Context, billID, receiptID, itemID uuid.UUID, input ItemInput) (*domain.Item, error) {
	if _, err := s.receiptRepo.GetByID(ctx, billID, receiptID); err != nil {
		return nil, err
	}
	existing, err := s.itemRepo.GetByID(ctx, receiptID, itemID)
	if err != nil {
		return nil, err
	}

	item, err := itemFromInput(receiptID, input)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("receipt.UpdateItem: %w", err)
	}
	return item, nil
}

func (s *receiptService) DeleteItem(ctx context.Context, billID, receiptID, itemID uuid.UUID) error {
	if _, err := s.receiptRepo.GetByID(ctx, billID, receiptID); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, receiptID, itemID)
}

// ReplaceSplits swaps an item's full split assignment in one shot. Partial
// split edits are not offered; the whole list is validated together because
// quantity totals and participant membership only make sense over the set.
func (s *receiptService) ReplaceSplits(ctx context.Context, billID, receiptID, itemID uuid.UUID, splits []SplitInput) error {
	if _, err := s.receiptRepo.GetByID(ctx, billID, receiptID); err != nil {
		return err
	}
	item, err := s.itemRepo.GetByID(ctx, receiptID, itemID)
	if err != nil {
		return err
	}

	domainSplits, err := s.validateSplits(ctx, billID, item, splits)
	if err != nil {
		return err
	}
	if err := s.itemRepo.ReplaceSplits(ctx, itemID, domainSplits); err != nil {
		return fmt.Errorf("receipt.ReplaceSplits: %w", err)
	}
	return nil
}

func (s *receiptService) SetTaxDistribution(ctx context.Context, billID, receiptID, itemID uuid.UUID, input TaxDistributionInput) error {
	if _, err := s.receiptRepo.GetByID(ctx, billID, receiptID); err != nil {
		return err
	}
	item, err := s.itemRepo.GetByID(ctx, receiptID, itemID)
	if err != nil {
		return err
	}
	if !item.IsTaxOrCharge {
		return domain.ErrInvalidDistribution
	}

	distType := domain.DistributionType(input.Type)
	if !domain.ValidDistributionTypes[distType] {
		return domain.ErrInvalidDistribution
	}

	dist := &domain.TaxDistribution{
		ID:     uuid.New(),
		ItemID: itemID,
		Type:   distType,
	}
	if distType == domain.DistributionCustom {
		custom, err := s.validateCustomData(ctx, billID, input.CustomData)
		if err != nil {
			return err
		}
		dist.CustomData = custom
	}

	if err := s.itemRepo.UpsertTaxDistribution(ctx, dist); err != nil {
		return fmt.Errorf("receipt.SetTaxDistribution: %w", err)
	}
	return nil
}

func (s *receiptService) validateSplits(ctx context.Context, billID uuid.UUID, item *domain.Item, inputs []SplitInput) ([]domain.Split, error) {
	participants, err := s.participantRepo.ListByBill(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("receipt.validateSplits: %w", err)
	}
	onBill := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		onBill[p.ID] = true
	}

	splits := make([]domain.Split, 0, len(inputs))
	var quantityTotal float64
	for _, in := range inputs {
		splitType := domain.SplitType(in.Type)
		if !domain.ValidSplitTypes[splitType] {
			return nil, domain.ErrInvalidSplitType
		}
		if !onBill[in.ParticipantID] {
			return nil, domain.ErrParticipantNotOnBill
		}
		switch splitType {
		case domain.SplitFixed:
			if in.Value <= 0 {
				return nil, domain.ErrInvalidSplitValue
			}
		case domain.SplitPercent:
			if in.Value <= 0 || in.Value > 100 {
				return nil, domain.ErrInvalidSplitValue
			}
		case domain.SplitQuantity:
			if in.Value <= 0 || in.Value != float64(int(in.Value)) {
				return nil, domain.ErrInvalidSplitValue
			}
			quantityTotal += in.Value
		}
		splits = append(splits, domain.Split{
			ID:            uuid.New(),
			ItemID:        item.ID,
			ParticipantID: in.ParticipantID,
			Type:          splitType,
			Value:         in.Value,
		})
	}

	if quantityTotal > float64(item.Quantity) {
		return nil, domain.ErrSplitExceedsQuantity
	}
	return splits, nil
}

// validateCustomData requires custom distributions to be a JSON object keyed
// by the ids of participants on the bill, with non-negative amounts.
func (s *receiptService) validateCustomData(ctx context.Context, billID uuid.UUID, data json.RawMessage) (json.RawMessage, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidCustomData
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.ErrInvalidCustomData
	}

	participants, err := s.participantRepo.ListByBill(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("receipt.validateCustomData: %w", err)
	}
	onBill := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		onBill[p.ID] = true
	}

	for key, amount := range raw {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, domain.ErrInvalidCustomData
		}
		if !onBill[id] {
			return nil, domain.ErrParticipantNotOnBill
		}
		if amount < 0 {
			return nil, domain.ErrInvalidCustomData
		}
	}
	return data, nil
}

func itemFromInput(receiptID uuid.UUID, input ItemInput) (*domain.Item, error) {
	item := &domain.Item{
		ReceiptID:     receiptID,
		Name:          input.Name,
		Price:         input.Price,
		IsTaxOrCharge: input.IsTaxOrCharge,
		ItemOrder:     input.ItemOrder,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if input.ChargeType != nil {
		ct := domain.ChargeType(*input.ChargeType)
		if !domain.ValidChargeTypes[ct] {
			return nil, domain.ErrInvalidChargeType
		}
		item.ChargeType = &ct
	}
	return item, nil
}
