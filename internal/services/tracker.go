package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dinnerplanner/internal/domain"
)

type trackerService struct {
	repo   domain.EventRepository
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewParticipantTracker creates a ParticipantTracker over the given
// repository.
func NewParticipantTracker(repo domain.EventRepository, logger *slog.Logger) domain.ParticipantTracker {
	return &trackerService{
		repo:   repo,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *trackerService) CreateEvent(ctx context.Context, params domain.CreateEventParams) (string, error) {
	if params.MinConfirmations < 1 {
		return "", fmt.Errorf("%w: min confirmations must be at least 1", domain.ErrInvalidInput)
	}
	if params.OrganizerEmail == "" {
		return "", fmt.Errorf("%w: organizer email is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	event := &domain.DinnerEvent{
		Organizer: domain.Participant{
			Name:          params.OrganizerName,
			Email:         params.OrganizerEmail,
			Phone:         params.OrganizerPhone,
			Confirmed:     true,
			PreferredDay:  params.PreferredDay,
			PreferredTime: params.PreferredTime,
			ConfirmedAt:   &now,
		},
		Participants:     []domain.Participant{},
		MinConfirmations: params.MinConfirmations,
		Location:         params.Location,
		CreatedAt:        now,
	}

	id := s.repo.NextEventID()
	s.persist(ctx, id, event)
	return id, nil
}

func (s *trackerService) AddConfirmation(ctx context.Context, eventID string, params domain.RSVPParams) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing := event.FindParticipant(params.Email); existing != nil {
		// Idempotent merge: same email (any case) updates in place.
		existing.Confirmed = true
		existing.ConfirmedAt = &now
		if params.PreferredDay != "" {
			existing.PreferredDay = params.PreferredDay
		}
		if params.PreferredTime != "" {
			existing.PreferredTime = params.PreferredTime
		}
		s.persist(ctx, eventID, event)
		return nil
	}

	event.Participants = append(event.Participants, domain.Participant{
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		Confirmed:     true,
		PreferredDay:  params.PreferredDay,
		PreferredTime: params.PreferredTime,
		ConfirmedAt:   &now,
	})
	s.persist(ctx, eventID, event)
	return nil
}

func (s *trackerService) ConfirmedCount(ctx context.Context, eventID string) int {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return 0
	}
	return event.ConfirmedCount()
}

func (s *trackerService) IsReadyToBook(ctx context.Context, eventID string) bool {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return false
	}
	return !event.Booked && event.ConfirmedCount() >= event.MinConfirmations
}

func (s *trackerService) MostCommonPreferences(ctx context.Context, eventID string) (string, string) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return "", ""
	}

	people := []domain.Participant{event.Organizer}
	for _, p := range event.Participants {
		if p.Confirmed {
			people = append(people, p)
		}
	}

	dayTally := newTally()
	timeTally := newTally()
	for _, p := range people {
		dayTally.add(p.PreferredDay)
		timeTally.add(p.PreferredTime)
	}
	return dayTally.mode(), timeTally.mode()
}

func (s *trackerService) MarkBooked(ctx context.Context, eventID, restaurantName, confirmationCode, bookingURL, cuisine string) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Booked {
		return domain.ErrAlreadyBooked
	}
	event.Booked = true
	event.RestaurantName = restaurantName
	event.BookingConfirmation = confirmationCode
	event.BookingURL = bookingURL
	event.Cuisine = cuisine
	s.persist(ctx, eventID, event)
	return nil
}

func (s *trackerService) ActiveEvents(ctx context.Context) map[string]*domain.DinnerEvent {
	all, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list events", "err", err)
		return map[string]*domain.DinnerEvent{}
	}
	active := make(map[string]*domain.DinnerEvent)
	for id, event := range all {
		if !event.Booked {
			active[id] = event
		}
	}
	return active
}

func (s *trackerService) MostRecentActiveEventID(ctx context.Context) (string, error) {
	var bestID string
	var bestAt time.Time
	for id, event := range s.ActiveEvents(ctx) {
		if bestID == "" || event.CreatedAt.After(bestAt) ||
			(event.CreatedAt.Equal(bestAt) && id > bestID) {
			bestID = id
			bestAt = event.CreatedAt
		}
	}
	if bestID == "" {
		return "", domain.ErrNotFound
	}
	return bestID, nil
}

func (s *trackerService) AllParticipantEmails(ctx context.Context, eventID string) []string {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil
	}
	emails := []string{event.Organizer.Email}
	for _, p := range event.Participants {
		if p.Confirmed {
			emails = append(emails, p.Email)
		}
	}
	return emails
}

func (s *trackerService) GetEvent(ctx context.Context, eventID string) (*domain.DinnerEvent, error) {
	return s.repo.GetByID(ctx, eventID)
}

func (s *trackerService) WithEventLock(eventID string, fn func()) {
	s.mu.Lock()
	lock, ok := s.locks[eventID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[eventID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	fn()
}

// persist saves the event and logs persistence failures without undoing the
// in-memory mutation. On crash the file may lag memory; acceptable at this
// scale.
func (s *trackerService) persist(ctx context.Context, eventID string, event *domain.DinnerEvent) {
	if err := s.repo.Save(ctx, eventID, event); err != nil {
		s.logger.Error("persist event", "event_id", eventID, "err", err)
	}
}

// tally counts non-empty string occurrences and resolves ties by first-seen
// order: a later value only wins with a strictly greater count.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := t.counts[value]; !ok {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

func (t *tally) mode() string {
	best := ""
	bestCount := 0
	for _, value := range t.order {
		if t.counts[value] > bestCount {
			best = value
			bestCount = t.counts[value]
		}
	}
	return best
}
