package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChatProvider is a mock implementation of port.ChatProvider.
type MockChatProvider struct {
	mock.Mock
}

func (m *MockChatProvider) Reply(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
