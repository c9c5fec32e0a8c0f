package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/domain"
	"wooltrace/internal/service"
	"wooltrace/mocks"
)

func TestChatService_Ask_TrimsMessage(t *testing.T) {
	provider := new(mocks.MockChatProvider)
	svc := service.NewChatService(provider)

	provider.On("Reply", mock.Anything, "How do I track a batch?").Return("Use the batch code.", nil)

	reply, err := svc.Ask(context.Background(), service.ChatInput{Message: "  How do I track a batch?  "})

	require.NoError(t, err)
	assert.Equal(t, "Use the batch code.", reply)
	provider.AssertExpectations(t)
}

func TestChatService_Ask_RejectsEmptyMessage(t *testing.T) {
	provider := new(mocks.MockChatProvider)
	svc := service.NewChatService(provider)

	_, err := svc.Ask(context.Background(), service.ChatInput{Message: "   "})

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	provider.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
}
