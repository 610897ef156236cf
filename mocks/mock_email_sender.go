package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"splittab/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSettlementSummary(ctx context.Context, toEmail, toName string, summary *domain.SettlementSummary) error {
	args := m.Called(ctx, toEmail, toName, summary)
	return args.Error(0)
}
