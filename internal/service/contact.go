package service

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Mailer delivers a single transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, plainText, htmlBody string) error
}

// ContactService forwards contact-form submissions to the support inbox and
// sends the submitter a confirmation.
type ContactService struct {
	mailer Mailer
	config *config.Config
	logger *zap.Logger
}

// NewContactService creates a new contact service.
func NewContactService(mailer Mailer, cfg *config.Config, logger *zap.Logger) *ContactService {
	return &ContactService{
		mailer: mailer,
		config: cfg,
		logger: logger,
	}
}

// SubmitContact validates the submission and sends both the inbox
// notification and the user confirmation. Mail failures propagate; there is
// no retry.
func (s *ContactService) SubmitContact(ctx context.Context, req *models.ContactRequest) error {
	if err := ValidateContactRequest(req); err != nil {
		return err
	}

	inboxBody := fmt.Sprintf("You received a message from %s <%s>:\n\n%s",
		req.Name, req.Email, req.Message)
	if err := s.mailer.Send(ctx, s.config.Email.ContactInbox,
		"New message from storefront", inboxBody, contactNotificationHTML(req)); err != nil {
		return err
	}

	confirmBody := fmt.Sprintf("Hi %s,\n\nThank you for your message! We will get back to you as soon as possible.\n\n- %s",
		req.Name, s.config.Email.FromName)
	if err := s.mailer.Send(ctx, req.Email,
		"Thank you for your message!", confirmBody, contactConfirmationHTML(req.Name, s.config.Email.FromName)); err != nil {
		return err
	}

	s.logger.Info("contact form handled", zap.String("from", req.Email))
	return nil
}

func contactNotificationHTML(req *models.ContactRequest) string {
	return fmt.Sprintf(
		`<p>You received a message from <strong>%s</strong> &lt;%s&gt;:</p><blockquote>%s</blockquote>`,
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Message))
}

func contactConfirmationHTML(name, fromName string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Thank you for your message! We will get back to you as soon as possible.</p><p>- %s</p>`,
		html.EscapeString(name), html.EscapeString(fromName))
}
