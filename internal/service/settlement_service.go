package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"splittab/internal/domain"
	"splittab/internal/engine"
	"splittab/internal/port"
)

// ShareSummaryInput is the DTO for emailing a settlement summary.
type ShareSummaryInput struct {
	ToEmail string `json:"to_email" binding:"required,email"`
	ToName  string `json:"to_name" binding:"max=100"`
}

// SettlementService computes settlement views over a bill snapshot and shares
// them. All arithmetic lives in the engine package; this layer only fetches
// the snapshot and fans out.
type SettlementService interface {
	Summary(ctx context.Context, billID uuid.UUID) (*domain.SettlementSummary, error)
	ParticipantBreakdown(ctx context.Context, billID, participantID uuid.UUID) (*domain.ParticipantBreakdown, error)
	ReceiptBreakdown(ctx context.Context, billID, receiptID uuid.UUID) (*domain.ReceiptBreakdown, error)
	ShareSummary(ctx context.Context, billID uuid.UUID, input ShareSummaryInput) error
}

type settlementService struct {
	snapshotRepo port.SnapshotRepository
	emailer      port.EmailSender
}

// NewSettlementService creates a new SettlementService implementation.
func NewSettlementService(snapshotRepo port.SnapshotRepository, emailer port.EmailSender) SettlementService {
	return &settlementService{snapshotRepo: snapshotRepo, emailer: emailer}
}

func (s *settlementService) Summary(ctx context.Context, billID uuid.UUID) (*domain.SettlementSummary, error) {
	snap, err := s.snapshotRepo.GetBillSnapshot(ctx, billID)
	if err != nil {
		return nil, err
	}
	return engine.Settle(snap), nil
}

func (s *settlementService) ParticipantBreakdown(ctx context.Context, billID, participantID uuid.UUID) (*domain.ParticipantBreakdown, error) {
	snap, err := s.snapshotRepo.GetBillSnapshot(ctx, billID)
	if err != nil {
		return nil, err
	}
	return engine.ParticipantBreakdown(snap, participantID)
}

func (s *settlementService) ReceiptBreakdown(ctx context.Context, billID, receiptID uuid.UUID) (*domain.ReceiptBreakdown, error) {
	snap, err := s.snapshotRepo.GetBillSnapshot(ctx, billID)
	if err != nil {
		return nil, err
	}
	return engine.ReceiptBreakdown(snap, receiptID)
}

func (s *settlementService) ShareSummary(ctx context.Context, billID uuid.UUID, input ShareSummaryInput) error {
	summary, err := s.Summary(ctx, billID)
	if err != nil {
		return err
	}
	if err := s.emailer.SendSettlementSummary(ctx, input.ToEmail, input.ToName, summary); err != nil {
		return fmt.Errorf("settlement.ShareSummary: %w", err)
	}
	return nil
}
