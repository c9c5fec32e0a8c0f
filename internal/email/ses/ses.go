package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendOrderConfirmation(ctx context.Context, toEmail, toName string, order *domain.Order) error {
	subject := fmt.Sprintf("Your wool order %s is confirmed", shortOrderRef(order))
	htmlBody := buildOrderConfirmationHTML(toName, order)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nThanks for your order. We have reserved %d batch(es) for you.\n\nOrder reference: %s\nTotal amount: %.2f\nStatus: %s\n\nWoolTrace Team",
		toName, len(order.Items), order.ID, order.TotalAmount, order.Status,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func shortOrderRef(order *domain.Order) string {
	id := order.ID.String()
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func buildOrderConfirmationHTML(name string, order *domain.Order) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Order confirmed</h2>
  <p>Hi %s,</p>
  <p>Thanks for your order. We have reserved %d batch(es) for you.</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 6px 0; color: #666;">Order reference</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 0; color: #666;">Total amount</td><td style="padding: 6px 0;">%.2f</td></tr>
    <tr><td style="padding: 6px 0; color: #666;">Status</td><td style="padding: 6px 0;">%s</td></tr>
  </table>
  <p>You can complete payment from your order history page.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">WoolTrace - Wool Supply Chain Platform</p>
</body>
</html>`, name, len(order.Items), order.ID, order.TotalAmount, order.Status)
}
