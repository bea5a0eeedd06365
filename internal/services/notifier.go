package services

import (
	"context"
	"log/slog"

	"dinnerplanner/internal/domain"
)

type notifierService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewNotifier returns a Notifier that renders the embedded email templates
// and sends one message per recipient.
func NewNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.Notifier {
	return &notifierService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *notifierService) SendBookingConfirmation(ctx context.Context, to []string, data *domain.BookingConfirmedEmailData) {
	s.fanOut(ctx, "booking_confirmed", to, data)
}

func (s *notifierService) SendBookingFailure(ctx context.Context, to []string, data *domain.BookingFailedEmailData) {
	s.fanOut(ctx, "booking_failed", to, data)
}

// fanOut renders the template once and sends to each recipient. Failures are
// logged and skipped; one bad address must not block the rest of the group.
func (s *notifierService) fanOut(ctx context.Context, templateName string, to []string, data any) {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		s.logger.ErrorContext(ctx, "render notification", "template", templateName, "err", err)
		return
	}
	for _, recipient := range to {
		if err := s.mailer.Send(recipient, subject, htmlBody, textBody); err != nil {
			s.logger.ErrorContext(ctx, "send notification",
				"template", templateName,
				"to", recipient,
				"err", err,
			)
		}
	}
}
