package noop

import (
	"context"
	"log"

	"splittab/internal/domain"
	"splittab/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendSettlementSummary(_ context.Context, toEmail, toName string, summary *domain.SettlementSummary) error {
	log.Printf("[NOOP EMAIL] Settlement summary for %s (%s): %d transfers on bill %s",
		toName, toEmail, len(summary.OptimizedSettlements), summary.BillID)
	return nil
}
