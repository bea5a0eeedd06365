package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"dinnerplanner/internal/domain"
)

// DinnerController handles the dinner-planning routes.
type DinnerController struct {
	Logger      *slog.Logger
	Coordinator domain.DinnerCoordinator
	Tracker     domain.ParticipantTracker

	// DefaultLocation and DefaultMinConfirmations fill requests that omit
	// them.
	DefaultLocation         string
	DefaultMinConfirmations int
}

func NewDinnerController(
	logger *slog.Logger,
	coordinator domain.DinnerCoordinator,
	tracker domain.ParticipantTracker,
	defaultLocation string,
	defaultMinConfirmations int,
) *DinnerController {
	return &DinnerController{
		Logger:                  logger,
		Coordinator:             coordinator,
		Tracker:                 tracker,
		DefaultLocation:         defaultLocation,
		DefaultMinConfirmations: defaultMinConfirmations,
	}
}

// CreateDinnerRequest is the request body for POST /dinners.
type CreateDinnerRequest struct {
	OrganizerName    string `json:"organizer_name"`
	OrganizerEmail   string `json:"organizer_email"`
	OrganizerPhone   string `json:"organizer_phone"`
	MinConfirmations int    `json:"min_confirmations"`
	PreferredDay     string `json:"preferred_day"`
	PreferredTime    string `json:"preferred_time"`
	Location         string `json:"location"`
}

// CreateDinnerResponse is the success payload for POST /dinners.
type CreateDinnerResponse struct {
	EventID          string `json:"event_id"`
	MinConfirmations int    `json:"min_confirmations"`
	Location         string `json:"location"`
}

// CreateDinner creates a new dinner event with the organizer pre-confirmed.
func (c *DinnerController) CreateDinner(w http.ResponseWriter, r *http.Request) {
	var req CreateDinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.OrganizerEmail == "" {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "organizer_email is required")
		return
	}
	if req.MinConfirmations == 0 {
		req.MinConfirmations = c.DefaultMinConfirmations
	}
	if req.Location == "" {
		req.Location = c.DefaultLocation
	}

	eventID, err := c.Coordinator.HandleDinnerRequest(r.Context(), domain.CreateEventParams{
		OrganizerName:    req.OrganizerName,
		OrganizerEmail:   req.OrganizerEmail,
		OrganizerPhone:   req.OrganizerPhone,
		MinConfirmations: req.MinConfirmations,
		PreferredDay:     req.PreferredDay,
		PreferredTime:    req.PreferredTime,
		Location:         req.Location,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "create dinner", "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	WriteJSONSuccess(w, http.StatusCreated, CreateDinnerResponse{
		EventID:          eventID,
		MinConfirmations: req.MinConfirmations,
		Location:         req.Location,
	})
}

// RSVPRequest is the request body for the RSVP routes.
type RSVPRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	PreferredDay  string `json:"preferred_day"`
	PreferredTime string `json:"preferred_time"`
}

func (r RSVPRequest) params() domain.RSVPParams {
	return domain.RSVPParams{
		Email:         r.Email,
		Name:          r.Name,
		Phone:         r.Phone,
		PreferredDay:  r.PreferredDay,
		PreferredTime: r.PreferredTime,
	}
}

// RSVP records a confirmation for the event in the path. The response
// reports the current headcount and whether this RSVP started the booking.
func (c *DinnerController) RSVP(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing eventID")
		return
	}
	req, ok := c.decodeRSVP(w, r)
	if !ok {
		return
	}
	outcome, err := c.Coordinator.HandleRSVP(r.Context(), eventID, req.params())
	c.writeRSVPOutcome(w, r, outcome, err)
}

// RSVPLatest records a confirmation against the most recent active event,
// for participants who only know the shared planner address.
func (c *DinnerController) RSVPLatest(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeRSVP(w, r)
	if !ok {
		return
	}
	outcome, err := c.Coordinator.HandleRSVPToLatest(r.Context(), req.params())
	c.writeRSVPOutcome(w, r, outcome, err)
}

func (c *DinnerController) decodeRSVP(w http.ResponseWriter, r *http.Request) (RSVPRequest, bool) {
	var req RSVPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return req, false
	}
	if req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "email is required")
		return req, false
	}
	return req, true
}

func (c *DinnerController) writeRSVPOutcome(w http.ResponseWriter, r *http.Request, outcome *domain.RSVPOutcome, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "no active dinner event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "rsvp", "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	WriteJSONSuccess(w, http.StatusOK, outcome)
}

// GetDinner returns the full event, including booking details once booked.
func (c *DinnerController) GetDinner(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	event, err := c.Tracker.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "dinner event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "get dinner", "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	WriteJSONSuccess(w, http.StatusOK, event)
}

// EventStatus is one entry in the status listing.
type EventStatus struct {
	EventID        string `json:"event_id"`
	Organizer      string `json:"organizer"`
	ConfirmedCount int    `json:"confirmed_count"`
	MinRequired    int    `json:"min_required"`
	ReadyToBook    bool   `json:"ready_to_book"`
	CreatedAt      string `json:"created_at"`
}

// StatusResponse is the payload for GET /status.
type StatusResponse struct {
	ActiveEvents int           `json:"active_events"`
	Events       []EventStatus `json:"events"`
}

// Status summarizes all events still collecting RSVPs.
func (c *DinnerController) Status(w http.ResponseWriter, r *http.Request) {
	active := c.Tracker.ActiveEvents(r.Context())
	resp := StatusResponse{
		ActiveEvents: len(active),
		Events:       []EventStatus{},
	}
	for id, event := range active {
		count := event.ConfirmedCount()
		resp.Events = append(resp.Events, EventStatus{
			EventID:        id,
			Organizer:      event.Organizer.Name,
			ConfirmedCount: count,
			MinRequired:    event.MinConfirmations,
			ReadyToBook:    count >= event.MinConfirmations,
			CreatedAt:      event.CreatedAt.Format(time.RFC3339),
		})
	}
	// Oldest first; map iteration order would make the listing jump around
	// between calls.
	slices.SortFunc(resp.Events, func(a, b EventStatus) int {
		if a.CreatedAt != b.CreatedAt {
			return strings.Compare(a.CreatedAt, b.CreatedAt)
		}
		return strings.Compare(a.EventID, b.EventID)
	})
	WriteJSONSuccess(w, http.StatusOK, resp)
}

// Health is the liveness endpoint.
func (c *DinnerController) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "dinner-planner",
	})
}
