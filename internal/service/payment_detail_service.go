package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splittab/internal/domain"
	"splittab/internal/port"
)

// PaymentDetailInput is the DTO for adding a payout account.
type PaymentDetailInput struct {
	ProviderName  string `json:"provider_name" binding:"required,max=100"`
	AccountNumber string `json:"account_number" binding:"required,max=100"`
	IsPrimary     bool   `json:"is_primary"`
}

// PaymentDetailService manages participant payout accounts.
type PaymentDetailService interface {
	Add(ctx context.Context, billID, participantID uuid.UUID, input PaymentDetailInput) (*domain.PaymentDetail, error)
	List(ctx context.Context, billID, participantID uuid.UUID) ([]domain.PaymentDetail, error)
	SetPrimary(ctx context.Context, billID, participantID, detailID uuid.UUID) error
	Delete(ctx context.Context, billID, participantID, detailID uuid.UUID) error
}

type paymentDetailService struct {
	participantRepo port.ParticipantRepository
	detailRepo      port.PaymentDetailRepository
}

// NewPaymentDetailService creates a new PaymentDetailService implementation.
func NewPaymentDetailService(participantRepo port.ParticipantRepository, detailRepo port.PaymentDetailRepository) PaymentDetailService {
	return &paymentDetailService{participantRepo: participantRepo, detailRepo: detailRepo}
}

func (s *paymentDetailService) Add(ctx context.Context, billID, participantID uuid.UUID, input PaymentDetailInput) (*domain.PaymentDetail, error) {
	if _, err := s.participantRepo.GetByID(ctx, billID, participantID); err != nil {
		return nil, err
	}
	detail := &domain.PaymentDetail{
		ID:            uuid.New(),
		ParticipantID: participantID,
		ProviderName:  input.ProviderName,
		AccountNumber: input.AccountNumber,
		IsPrimary:     input.IsPrimary,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.detailRepo.Create(ctx, detail); err != nil {
		return nil, fmt.Errorf("paymentDetail.Add: %w", err)
	}
	return detail, nil
}

func (s *paymentDetailService) List(ctx context.Context, billID, participantID uuid.UUID) ([]domain.PaymentDetail, error) {
	if _, err := s.participantRepo.GetByID(ctx, billID, participantID); err != nil {
		return nil, err
	}
	return s.detailRepo.ListByParticipant(ctx, participantID)
}

func (s *paymentDetailService) SetPrimary(ctx context.Context, billID, participantID, detailID uuid.UUID) error {
	if _, err := s.participantRepo.GetByID(ctx, billID, participantID); err != nil {
		return err
	}
	return s.detailRepo.SetPrimary(ctx, participantID, detailID)
}

func (s *paymentDetailService) Delete(ctx context.Context, billID, participantID, detailID uuid.UUID) error {
	if _, err := s.participantRepo.GetByID(ctx, billID, participantID); err != nil {
		return err
	}
	return s.detailRepo.Delete(ctx, participantID, detailID)
}
