package services

import (
	"math/rand/v2"
	"slices"
	"sync"

	"dinnerplanner/internal/domain"
)

// recentWindowSize bounds the anti-repeat memory for restaurant selection.
const recentWindowSize = 10

var cuisines = []string{"Thai", "Chinese", "Indian"}

// restaurantSelector holds the static restaurant catalog and a bounded,
// ordered memory of recently selected restaurants. The memory lives for the
// process only; restarts reset the anti-repeat history.
type restaurantSelector struct {
	intn func(int) int

	mu     sync.Mutex
	recent []string // oldest first
}

// NewRestaurantSelector creates a RestaurantSelector backed by the built-in
// catalog.
func NewRestaurantSelector() domain.RestaurantSelector {
	return &restaurantSelector{intn: rand.IntN}
}

func (s *restaurantSelector) SelectCuisine() string {
	return cuisines[s.intn(len(cuisines))]
}

// SearchRestaurants returns the catalog entries for the cuisine. Day, time,
// and party size are part of the search contract for a real discovery
// backend; the static catalog ignores them. A cuisine with no entries gets a
// single synthesized fallback candidate.
func (s *restaurantSelector) SearchRestaurants(cuisine, location, day, timeOfDay string, partySize int) []domain.RestaurantCandidate {
	if entries, ok := catalog[cuisine]; ok {
		return slices.Clone(entries)
	}
	return []domain.RestaurantCandidate{{
		Name:       "Local " + cuisine + " Restaurant",
		Address:    "Downtown " + location,
		Phone:      "(555) 123-4567",
		Rating:     4.0,
		PriceRange: "$$",
		BookingURL: "https://www.opentable.com",
	}}
}

func (s *restaurantSelector) SelectRestaurant(candidates []domain.RestaurantCandidate) (*domain.RestaurantCandidate, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range candidates {
		if !slices.Contains(s.recent, candidates[i].Key()) {
			s.markUsedLocked(candidates[i].Key())
			return &candidates[i], nil
		}
	}

	// Every candidate was used recently; fall back to the first and record
	// it again so the window keeps rotating.
	s.markUsedLocked(candidates[0].Key())
	return &candidates[0], nil
}

// markUsedLocked appends the key and evicts the oldest entry once the window
// overflows. Caller holds s.mu.
func (s *restaurantSelector) markUsedLocked(key string) {
	s.recent = append(s.recent, key)
	if len(s.recent) > recentWindowSize {
		s.recent = s.recent[1:]
	}
}

var catalog = map[string][]domain.RestaurantCandidate{
	"Thai": {
		{
			Name:       "Thai Garden Restaurant",
			Address:    "123 Market St, San Francisco, CA",
			Phone:      "(415) 555-0123",
			Rating:     4.5,
			PriceRange: "$$",
			BookingURL: "https://www.opentable.com/r/thai-garden-san-francisco",
		},
		{
			Name:       "Golden Thai Cuisine",
			Address:    "456 Union Square, San Francisco, CA",
			Phone:      "(415) 555-0456",
			Rating:     4.3,
			PriceRange: "$$$",
			BookingURL: "https://www.opentable.com/r/golden-thai-san-francisco",
		},
		{
			Name:       "Spice House Thai",
			Address:    "789 Mission St, San Francisco, CA",
			Phone:      "(415) 555-0789",
			Rating:     4.2,
			PriceRange: "$$",
			BookingURL: "https://www.opentable.com/r/spice-house-thai-sf",
		},
	},
	"Chinese": {
		{
			Name:       "Dragon Palace",
			Address:    "321 Chinatown, San Francisco, CA",
			Phone:      "(415) 555-1234",
			Rating:     4.6,
			PriceRange: "$$$",
			BookingURL: "https://www.opentable.com/r/dragon-palace-sf",
		},
		{
			Name:       "Golden Dragon Restaurant",
			Address:    "654 Grant Ave, San Francisco, CA",
			Phone:      "(415) 555-5678",
			Rating:     4.4,
			PriceRange: "$$",
			BookingURL: "https://www.opentable.com/r/golden-dragon-sf",
		},
		{
			Name:       "Jade Garden Chinese",
			Address:    "987 Stockton St, San Francisco, CA",
			Phone:      "(415) 555-9876",
			Rating:     4.1,
			PriceRange: "$$",
			BookingURL: "https://www.opentable.com/r/jade-garden-sf",
		},
	},
	"Indian": {
		{
			Name:       "Taj Mahal Indian Cuisine",
			Address:    "159 Folsom St, San Francisco, CA",
			Phone:      "(415) 555-1590",
			Rating:     4.7,
			PriceRange: "$$$",
			BookingURL: "https://www.opentable.com/r/taj-mahal-sf",
		},
		{
			Name:       "Spice Route Indian",
			Address:    "357 Valencia St, San Francisco, CA",
			Phone:      "(415) 555-3570",
			Rating:     4.3,
			PriceRange: "$$",
			BookingURL: "https://www.opentable.com/r/spice-route-sf",
		},
		{
			Name:       "Mumbai Palace",
			Address:    "741 Mission St, San Francisco, CA",
			Phone:      "(415) 555-7410",
			Rating:     4.2,
			PriceRange: "$$",
			BookingURL: "https://www.opentable.com/r/mumbai-palace-sf",
		},
	},
}
