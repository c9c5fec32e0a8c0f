package noop

import (
	"context"
	"log"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs order confirmations to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendOrderConfirmation(_ context.Context, toEmail, toName string, order *domain.Order) error {
	log.Printf("[NOOP EMAIL] Order confirmation for %s (%s): order %s, total %.2f", toName, toEmail, order.ID, order.TotalAmount)
	return nil
}
