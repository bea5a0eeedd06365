package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dinnerplanner/internal/domain"
	"dinnerplanner/internal/metrics"
)

// eventState tracks where an event is in the booking workflow. It is
// in-memory only: on restart every unbooked event is back in collecting.
type eventState int

const (
	stateCollecting eventState = iota
	stateBookingInProgress
	stateBooked
	stateBookingFailed
)

const (
	defaultDay  = "Saturday"
	defaultTime = "7:00 PM"
)

// CoordinatorOptions tunes the coordinator's worker pool and retry policy.
// Zero values fall back to defaults.
type CoordinatorOptions struct {
	Workers      int
	MaxAttempts  int
	RetryBackoff time.Duration
	Now          func() time.Time
}

type coordinatorService struct {
	tracker  domain.ParticipantTracker
	selector domain.RestaurantSelector
	executor domain.BookingExecutor
	notifier domain.Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics

	maxAttempts  int
	retryBackoff time.Duration
	now          func() time.Time

	mu     sync.Mutex
	states map[string]eventState

	tasks chan string
	wg    sync.WaitGroup
}

// NewDinnerCoordinator creates the coordinator and starts its booking
// workers. Call Stop to drain them.
func NewDinnerCoordinator(
	tracker domain.ParticipantTracker,
	selector domain.RestaurantSelector,
	executor domain.BookingExecutor,
	notifier domain.Notifier,
	logger *slog.Logger,
	m *metrics.Metrics,
	opts CoordinatorOptions,
) domain.DinnerCoordinator {
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &coordinatorService{
		tracker:      tracker,
		selector:     selector,
		executor:     executor,
		notifier:     notifier,
		logger:       logger,
		metrics:      m,
		maxAttempts:  opts.MaxAttempts,
		retryBackoff: opts.RetryBackoff,
		now:          opts.Now,
		states:       make(map[string]eventState),
		tasks:        make(chan string, 16),
	}
	for range opts.Workers {
		c.wg.Add(1)
		go c.worker()
	}
	return c
}

func (c *coordinatorService) HandleDinnerRequest(ctx context.Context, params domain.CreateEventParams) (string, error) {
	eventID, err := c.tracker.CreateEvent(ctx, params)
	if err != nil {
		return "", err
	}
	c.logger.Info("dinner event created",
		"event_id", eventID,
		"organizer", params.OrganizerEmail,
		"min_confirmations", params.MinConfirmations,
	)
	c.metrics.ActiveEvents.Set(float64(len(c.tracker.ActiveEvents(ctx))))
	return eventID, nil
}

func (c *coordinatorService) HandleRSVP(ctx context.Context, eventID string, params domain.RSVPParams) (*domain.RSVPOutcome, error) {
	var outcome *domain.RSVPOutcome
	var rsvpErr error
	trigger := false

	// Merge and readiness check run under the event lock so two concurrent
	// RSVPs that jointly cross the threshold cannot both trigger a booking.
	c.tracker.WithEventLock(eventID, func() {
		event, err := c.tracker.GetEvent(ctx, eventID)
		if err != nil {
			rsvpErr = err
			return
		}
		if err := c.tracker.AddConfirmation(ctx, eventID, params); err != nil {
			rsvpErr = err
			return
		}
		outcome = &domain.RSVPOutcome{
			EventID:          eventID,
			ConfirmedCount:   c.tracker.ConfirmedCount(ctx, eventID),
			MinConfirmations: event.MinConfirmations,
			AlreadyBooked:    event.Booked,
		}
		if c.tracker.IsReadyToBook(ctx, eventID) && c.claimBooking(eventID) {
			outcome.BookingStarted = true
			trigger = true
		}
	})
	if rsvpErr != nil {
		return nil, rsvpErr
	}

	c.metrics.RSVPs.Inc()
	if trigger {
		c.logger.Info("threshold reached, booking triggered",
			"event_id", eventID,
			"confirmed", outcome.ConfirmedCount,
		)
		// Enqueue outside the event lock: the pool may be busy and the send
		// must never stall other RSVPs on this event.
		c.tasks <- eventID
	}
	return outcome, nil
}

func (c *coordinatorService) HandleRSVPToLatest(ctx context.Context, params domain.RSVPParams) (*domain.RSVPOutcome, error) {
	eventID, err := c.tracker.MostRecentActiveEventID(ctx)
	if err != nil {
		return nil, err
	}
	return c.HandleRSVP(ctx, eventID, params)
}

func (c *coordinatorService) Stop() {
	close(c.tasks)
	c.wg.Wait()
}

// claimBooking moves the event from a triggerable state into
// BOOKING_IN_PROGRESS. A previously failed event is triggerable again; an
// in-progress or booked one is not.
func (c *coordinatorService) claimBooking(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.states[eventID] {
	case stateBookingInProgress, stateBooked:
		return false
	}
	c.states[eventID] = stateBookingInProgress
	return true
}

func (c *coordinatorService) setState(eventID string, state eventState) {
	c.mu.Lock()
	c.states[eventID] = state
	c.mu.Unlock()
}

func (c *coordinatorService) worker() {
	defer c.wg.Done()
	for eventID := range c.tasks {
		c.runBooking(context.Background(), eventID)
	}
}

// runBooking executes the full booking workflow for one event. It runs
// outside any event lock; only the final commit re-enters the critical
// section.
func (c *coordinatorService) runBooking(ctx context.Context, eventID string) {
	event, err := c.tracker.GetEvent(ctx, eventID)
	if err != nil {
		c.logger.Error("booking: event vanished", "event_id", eventID, "err", err)
		c.setState(eventID, stateBookingFailed)
		return
	}

	day, timeOfDay := c.tracker.MostCommonPreferences(ctx, eventID)
	if day == "" {
		day = defaultDay
	}
	if timeOfDay == "" {
		timeOfDay = defaultTime
	}
	partySize := c.tracker.ConfirmedCount(ctx, eventID)

	cuisine := c.selector.SelectCuisine()
	candidates := c.selector.SearchRestaurants(cuisine, event.Location, day, timeOfDay, partySize)
	restaurant, err := c.selector.SelectRestaurant(candidates)
	if err != nil {
		// Hard stop: never invoke the executor without a restaurant.
		c.failBooking(ctx, eventID, fmt.Sprintf("no %s restaurants available in %s", cuisine, event.Location))
		return
	}

	c.logger.Info("booking restaurant",
		"event_id", eventID,
		"cuisine", cuisine,
		"restaurant", restaurant.Name,
		"party_size", partySize,
	)

	req := domain.BookingRequest{
		Restaurant:     *restaurant,
		PartySize:      partySize,
		Date:           NormalizeDate(day, c.now()),
		Time:           NormalizeTime(timeOfDay),
		OrganizerName:  event.Organizer.Name,
		OrganizerEmail: event.Organizer.Email,
	}

	result, err := c.bookWithRetry(ctx, eventID, req)
	if err != nil {
		c.failBooking(ctx, eventID, err.Error())
		return
	}

	c.commitBooking(ctx, eventID, cuisine, result)
}

// bookWithRetry calls the executor up to maxAttempts times with exponential
// backoff. An executor-reported failure and a transport error are retried
// alike.
func (c *coordinatorService) bookWithRetry(ctx context.Context, eventID string, req domain.BookingRequest) (*domain.BookingResult, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result, err := c.executor.Book(ctx, req)
		switch {
		case err != nil:
			lastErr = err
		case !result.Success:
			lastErr = fmt.Errorf("reservation declined: %s", result.Error)
		default:
			return result, nil
		}

		c.logger.Warn("booking attempt failed",
			"event_id", eventID,
			"attempt", attempt,
			"err", lastErr,
		)
		if attempt < c.maxAttempts {
			time.Sleep(c.retryBackoff << (attempt - 1))
		}
	}
	return nil, fmt.Errorf("booking failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *coordinatorService) commitBooking(ctx context.Context, eventID, cuisine string, result *domain.BookingResult) {
	var commitErr error
	c.tracker.WithEventLock(eventID, func() {
		commitErr = c.tracker.MarkBooked(ctx, eventID,
			result.RestaurantName,
			result.ConfirmationNumber,
			result.ConfirmationURL,
			cuisine,
		)
	})
	if commitErr != nil {
		c.logger.Error("mark booked", "event_id", eventID, "err", commitErr)
		c.failBooking(ctx, eventID, commitErr.Error())
		return
	}
	c.setState(eventID, stateBooked)
	c.metrics.Bookings.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.metrics.ActiveEvents.Set(float64(len(c.tracker.ActiveEvents(ctx))))

	emails := c.tracker.AllParticipantEmails(ctx, eventID)
	c.notifier.SendBookingConfirmation(ctx, emails, &domain.BookingConfirmedEmailData{
		RestaurantName:     result.RestaurantName,
		Cuisine:            cuisine,
		Date:               result.Date,
		Time:               result.Time,
		PartySize:          result.PartySize,
		ConfirmationNumber: result.ConfirmationNumber,
		ConfirmationURL:    result.ConfirmationURL,
	})
	c.logger.Info("dinner booked",
		"event_id", eventID,
		"restaurant", result.RestaurantName,
		"confirmation", result.ConfirmationNumber,
	)
}

// failBooking records the failure, leaves the event unbooked so a later RSVP
// can start a fresh attempt cycle, and notifies everyone.
func (c *coordinatorService) failBooking(ctx context.Context, eventID, detail string) {
	c.setState(eventID, stateBookingFailed)
	c.metrics.Bookings.WithLabelValues(metrics.OutcomeFailure).Inc()

	emails := c.tracker.AllParticipantEmails(ctx, eventID)
	c.notifier.SendBookingFailure(ctx, emails, &domain.BookingFailedEmailData{ErrorDetail: detail})
	c.logger.Error("booking failed", "event_id", eventID, "detail", detail)
}
