package service

import (
	"context"
	"strings"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

// ChatInput is the DTO for assistant questions.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// ChatService answers free-form questions about the platform.
type ChatService interface {
	Ask(ctx context.Context, input ChatInput) (string, error)
}

type chatService struct {
	provider port.ChatProvider
}

// NewChatService creates a new ChatService implementation.
func NewChatService(provider port.ChatProvider) ChatService {
	return &chatService{provider: provider}
}

func (s *chatService) Ask(ctx context.Context, input ChatInput) (string, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}
	return s.provider.Reply(ctx, message)
}
