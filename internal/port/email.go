package port

import (
	"context"

	"wooltrace/internal/domain"
)

// EmailSender defines the contract for sending order notifications.
type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, toEmail, toName string, order *domain.Order) error
}
