package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerplanner/internal/domain"
)

func TestRenderBookingConfirmed(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, htmlBody, textBody, err := renderer.Render("booking_confirmed", &domain.BookingConfirmedEmailData{
		RestaurantName:     "Dragon Palace",
		Cuisine:            "Chinese",
		Date:               "January 17, 2026",
		Time:               "7:00 PM",
		PartySize:          4,
		ConfirmationNumber: "ABC123",
		ConfirmationURL:    "https://www.opentable.com/confirm/abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dinner Confirmed - Dragon Palace", subject)
	assert.Contains(t, textBody, "Dragon Palace (Chinese Cuisine)")
	assert.Contains(t, textBody, "Party Size: 4 people")
	assert.Contains(t, textBody, "#ABC123")
	assert.Contains(t, textBody, "https://www.opentable.com/confirm/abc123")
	assert.Contains(t, htmlBody, "Dragon Palace")
	assert.Contains(t, htmlBody, "ABC123")
}

func TestRenderBookingConfirmedWithoutURL(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, htmlBody, textBody, err := renderer.Render("booking_confirmed", &domain.BookingConfirmedEmailData{
		RestaurantName:     "Thai Garden Restaurant",
		Cuisine:            "Thai",
		Date:               "January 17, 2026",
		Time:               "7:00 PM",
		PartySize:          3,
		ConfirmationNumber: "XYZ",
	})
	require.NoError(t, err)
	assert.NotContains(t, textBody, "Confirmation URL")
	assert.NotContains(t, htmlBody, "View your reservation")
}

func TestRenderBookingFailed(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, _, textBody, err := renderer.Render("booking_failed", &domain.BookingFailedEmailData{
		ErrorDetail: "no tables available",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dinner Booking Issue - Manual Action Needed", subject)
	assert.Contains(t, textBody, "no tables available")
}

func TestRenderUnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, _, _, err := renderer.Render("nonexistent", nil)
	assert.Error(t, err)
}
