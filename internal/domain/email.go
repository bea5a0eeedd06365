package domain

import "context"

// Mailer defines the contract for sending a single email (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmedEmailData holds data for the booking confirmation email.
type BookingConfirmedEmailData struct {
	RestaurantName     string
	Cuisine            string
	Date               string
	Time               string
	PartySize          int
	ConfirmationNumber string
	ConfirmationURL    string
}

// BookingFailedEmailData holds data for the booking failure notice.
type BookingFailedEmailData struct {
	ErrorDetail string
}

// Notifier fans dinner notifications out to participants. Sends are
// best-effort: failures are logged, never returned.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to []string, data *BookingConfirmedEmailData)
	SendBookingFailure(ctx context.Context, to []string, data *BookingFailedEmailData)
}
