package clients

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
)

// SendGridMailer sends transactional email through SendGrid.
type SendGridMailer struct {
	apiKey   string
	fromName string
	fromAddr string
	logger   *zap.Logger
}

// NewSendGridMailer creates a new SendGrid mail sender.
func NewSendGridMailer(cfg config.EmailConfig, logger *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   cfg.APIKey,
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
		logger:   logger,
	}
}

// Send delivers one email. Provider failures surface as upstream errors with
// the provider's message; there is no retry.
func (m *SendGridMailer) Send(ctx context.Context, to, subject, plainText, htmlBody string) error {
	if m.apiKey == "" {
		return apperrors.NewUpstreamError("sendgrid", fmt.Errorf("api key is not configured"))
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlBody)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		m.logger.Error("mail send failed", zap.String("to", to), zap.Error(err))
		return apperrors.NewUpstreamError("sendgrid", err)
	}

	if response.StatusCode >= 400 {
		m.logger.Error("mail send rejected",
			zap.String("to", to),
			zap.Int("status_code", response.StatusCode),
			zap.String("body", response.Body))
		return apperrors.NewUpstreamError("sendgrid",
			fmt.Errorf("status %d: %s", response.StatusCode, response.Body))
	}

	m.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
