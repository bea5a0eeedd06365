package domain

import "context"

// RestaurantCandidate is one restaurant returned by a search.
type RestaurantCandidate struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Rating     float64 `json:"rating"`
	PriceRange string  `json:"price_range"`
	BookingURL string  `json:"booking_url"`
}

// Key is the identity used by the selector's anti-repeat window.
func (c RestaurantCandidate) Key() string {
	return c.Name + "_" + c.Address
}

// RestaurantSelector picks a cuisine and a restaurant for a dinner.
type RestaurantSelector interface {
	// SelectCuisine draws a cuisine uniformly at random. Draws are
	// independent; only restaurants, not cuisines, are repeat-avoided.
	SelectCuisine() string
	// SearchRestaurants returns candidates for the cuisine, best first.
	SearchRestaurants(cuisine, location, day, timeOfDay string, partySize int) []RestaurantCandidate
	// SelectRestaurant returns the first candidate not used recently,
	// falling back to the first candidate when all have been used. Returns
	// ErrNoCandidates for an empty list.
	SelectRestaurant(candidates []RestaurantCandidate) (*RestaurantCandidate, error)
}

// BookingRequest is the input to the external booking executor. Date and
// Time are already normalized by the coordinator: Date is an explicit date
// such as "January 20, 2026", Time a 12-hour clock such as "7:00 PM".
type BookingRequest struct {
	Restaurant     RestaurantCandidate `json:"restaurant"`
	PartySize      int                 `json:"party_size"`
	Date           string              `json:"date"`
	Time           string              `json:"time"`
	OrganizerName  string              `json:"organizer_name"`
	OrganizerEmail string              `json:"organizer_email"`
}

// BookingResult is the executor's outcome. When Success is false, Error
// carries the failure detail.
type BookingResult struct {
	Success            bool   `json:"success"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	RestaurantName     string `json:"restaurant_name"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	PartySize          int    `json:"party_size"`
	ConfirmationURL    string `json:"confirmation_url,omitempty"`
	Error              string `json:"error,omitempty"`
}

// BookingExecutor performs the actual reservation against an external
// reservation surface. Calls may take tens of seconds.
type BookingExecutor interface {
	Book(ctx context.Context, req BookingRequest) (*BookingResult, error)
}
