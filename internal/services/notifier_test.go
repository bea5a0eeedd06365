package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"dinnerplanner/internal/domain"
)

type fakeMailer struct {
	mu        sync.Mutex
	sent      []string // recipients in send order
	failFor   string
	lastSubj  string
	lastText  string
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if to == f.failFor {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, to)
	f.lastSubj = subject
	f.lastText = text
	return nil
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + templateName, "<p>" + templateName + "</p>", "text:" + templateName, nil
}

func TestNotifier_SendsToEveryRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	notifier := NewNotifier(mailer, &fakeRenderer{}, discardLogger())

	notifier.SendBookingConfirmation(context.Background(),
		[]string{"alice@x.com", "bob@x.com", "carol@x.com"},
		&domain.BookingConfirmedEmailData{RestaurantName: "Dragon Palace"})

	assert.Equal(t, []string{"alice@x.com", "bob@x.com", "carol@x.com"}, mailer.sent)
	assert.Equal(t, "subject:booking_confirmed", mailer.lastSubj)
}

func TestNotifier_OneFailureDoesNotBlockOthers(t *testing.T) {
	mailer := &fakeMailer{failFor: "bob@x.com"}
	notifier := NewNotifier(mailer, &fakeRenderer{}, discardLogger())

	notifier.SendBookingFailure(context.Background(),
		[]string{"alice@x.com", "bob@x.com", "carol@x.com"},
		&domain.BookingFailedEmailData{ErrorDetail: "boom"})

	assert.Equal(t, []string{"alice@x.com", "carol@x.com"}, mailer.sent)
}

func TestNotifier_RenderFailureSendsNothing(t *testing.T) {
	mailer := &fakeMailer{}
	notifier := NewNotifier(mailer, &fakeRenderer{err: errors.New("bad template")}, discardLogger())

	notifier.SendBookingConfirmation(context.Background(),
		[]string{"alice@x.com"}, &domain.BookingConfirmedEmailData{})

	assert.Empty(t, mailer.sent)
}
