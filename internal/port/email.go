package port

import (
	"context"

	"splittab/internal/domain"
)

// EmailSender defines the contract for sending settlement emails.
type EmailSender interface {
	SendSettlementSummary(ctx context.Context, toEmail, toName string, summary *domain.SettlementSummary) error
}
