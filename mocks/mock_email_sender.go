package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wooltrace/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOrderConfirmation(ctx context.Context, toEmail, toName string, order *domain.Order) error {
	args := m.Called(ctx, toEmail, toName, order)
	return args.Error(0)
}
