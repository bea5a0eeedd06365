package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyBooked = errors.New("event already booked")
	ErrNoCandidates  = errors.New("no restaurant candidates")
	ErrInvalidInput  = errors.New("invalid input")
)

// Participant is one person attached to a dinner event. Identity within an
// event is the lowercased email address.
type Participant struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Confirmed     bool       `json:"confirmed"`
	PreferredDay  string     `json:"preferred_day,omitempty"`
	PreferredTime string     `json:"preferred_time,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
}

// DinnerEvent is one group-dinner coordination session, from the initial
// request until a restaurant is booked. The organizer is set at creation and
// never changes; Booked goes false->true exactly once.
type DinnerEvent struct {
	Organizer           Participant   `json:"organizer"`
	Participants        []Participant `json:"participants"`
	MinConfirmations    int           `json:"min_confirmations"`
	Location            string        `json:"location"`
	Cuisine             string        `json:"cuisine,omitempty"`
	RestaurantName      string        `json:"restaurant_name,omitempty"`
	BookingConfirmation string        `json:"booking_confirmation,omitempty"`
	BookingURL          string        `json:"booking_url,omitempty"`
	Booked              bool          `json:"booked"`
	CreatedAt           time.Time     `json:"created_at"`
}

// ConfirmedCount returns the confirmed headcount: the organizer plus every
// confirmed participant.
func (e *DinnerEvent) ConfirmedCount() int {
	count := 1
	for _, p := range e.Participants {
		if p.Confirmed {
			count++
		}
	}
	return count
}

// FindParticipant returns the participant with the given email
// (case-insensitive), or nil.
func (e *DinnerEvent) FindParticipant(email string) *Participant {
	for i := range e.Participants {
		if strings.EqualFold(e.Participants[i].Email, email) {
			return &e.Participants[i]
		}
	}
	return nil
}

// Clone returns a deep copy sharing no memory with the receiver, so holders
// of the copy never observe later mutations of the original.
func (e *DinnerEvent) Clone() *DinnerEvent {
	clone := *e
	clone.Organizer = e.Organizer.clone()
	if e.Participants != nil {
		clone.Participants = make([]Participant, len(e.Participants))
		for i, p := range e.Participants {
			clone.Participants[i] = p.clone()
		}
	}
	return &clone
}

func (p Participant) clone() Participant {
	c := p
	if p.ConfirmedAt != nil {
		at := *p.ConfirmedAt
		c.ConfirmedAt = &at
	}
	return c
}

// EventRepository defines storage for dinner events. Implementations own
// their events exclusively: Save stores a copy, and GetByID/List hand out
// copies, so no two callers ever share a *DinnerEvent.
type EventRepository interface {
	// Save upserts a copy of the event under id and persists the store.
	Save(ctx context.Context, id string, event *DinnerEvent) error
	// GetByID returns a private copy of the event; mutate it freely and
	// write changes back through Save.
	GetByID(ctx context.Context, id string) (*DinnerEvent, error)
	// List returns private copies of all events keyed by id.
	List(ctx context.Context) (map[string]*DinnerEvent, error)
	// NextEventID returns a new event id, unique for the store's lifetime.
	NextEventID() string
}

// CreateEventParams holds the organizer details and thresholds for a new
// dinner event.
type CreateEventParams struct {
	OrganizerName    string
	OrganizerEmail   string
	OrganizerPhone   string
	MinConfirmations int
	PreferredDay     string
	PreferredTime    string
	Location         string
}

// RSVPParams holds one participant confirmation. Email identifies the
// participant; PreferredDay and PreferredTime override stored preferences
// only when non-empty.
type RSVPParams struct {
	Email         string
	Name          string
	Phone         string
	PreferredDay  string
	PreferredTime string
}

// ParticipantTracker defines the business operations over the event store.
type ParticipantTracker interface {
	// CreateEvent creates an event with the organizer pre-confirmed and
	// returns the new event id.
	CreateEvent(ctx context.Context, params CreateEventParams) (string, error)
	// AddConfirmation records an RSVP. Confirmations are merged by
	// case-insensitive email: an existing participant is updated in place,
	// never appended twice. Returns ErrNotFound for an unknown event.
	AddConfirmation(ctx context.Context, eventID string, params RSVPParams) error
	// ConfirmedCount returns the confirmed headcount, 0 for an unknown event.
	ConfirmedCount(ctx context.Context, eventID string) int
	// IsReadyToBook reports whether the event exists, is not booked, and has
	// reached its confirmation threshold. Callers deciding to trigger a
	// booking must evaluate this inside WithEventLock.
	IsReadyToBook(ctx context.Context, eventID string) bool
	// MostCommonPreferences returns the modal preferred day and time across
	// the organizer and confirmed participants. Ties go to the value seen
	// first. Empty strings mean no preference recorded.
	MostCommonPreferences(ctx context.Context, eventID string) (day, timeOfDay string)
	// MarkBooked sets the booking fields and flips Booked. Returns
	// ErrNotFound for an unknown event and ErrAlreadyBooked if called twice.
	MarkBooked(ctx context.Context, eventID, restaurantName, confirmationCode, bookingURL, cuisine string) error
	// ActiveEvents returns all events with Booked == false.
	ActiveEvents(ctx context.Context) map[string]*DinnerEvent
	// MostRecentActiveEventID returns the id of the newest unbooked event,
	// or ErrNotFound when none exist.
	MostRecentActiveEventID(ctx context.Context) (string, error)
	// AllParticipantEmails returns the organizer's email followed by every
	// confirmed participant's email in insertion order.
	AllParticipantEmails(ctx context.Context, eventID string) []string
	GetEvent(ctx context.Context, eventID string) (*DinnerEvent, error)
	// WithEventLock runs fn while holding the lock for eventID, serializing
	// read-then-write sequences on that event's confirmation state.
	WithEventLock(eventID string, fn func())
}

// RSVPOutcome describes the immediate result of processing an RSVP, returned
// before any booking work happens.
type RSVPOutcome struct {
	EventID          string `json:"event_id"`
	ConfirmedCount   int    `json:"confirmed_count"`
	MinConfirmations int    `json:"min_confirmations"`
	BookingStarted   bool   `json:"booking_started"`
	AlreadyBooked    bool   `json:"already_booked"`
}

// DinnerCoordinator orchestrates RSVP collection and the booking workflow.
type DinnerCoordinator interface {
	// HandleDinnerRequest creates a new dinner event and returns its id.
	HandleDinnerRequest(ctx context.Context, params CreateEventParams) (string, error)
	// HandleRSVP merges the confirmation and, if this RSVP crosses the
	// threshold, starts the booking workflow in the background. The booking
	// is edge-triggered: it starts at most once per event regardless of how
	// many concurrent RSVPs cross the threshold.
	HandleRSVP(ctx context.Context, eventID string, params RSVPParams) (*RSVPOutcome, error)
	// HandleRSVPToLatest applies the RSVP to the most recent active event.
	HandleRSVPToLatest(ctx context.Context, params RSVPParams) (*RSVPOutcome, error)
	// Stop waits for in-flight booking tasks to finish.
	Stop()
}
