package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerplanner/internal/domain"
)

func TestSelectCuisine(t *testing.T) {
	selector := NewRestaurantSelector()
	for range 30 {
		assert.Contains(t, cuisines, selector.SelectCuisine())
	}
}

func TestSelectCuisineCoversAllOptions(t *testing.T) {
	s := &restaurantSelector{intn: func(n int) int { return 0 }}
	assert.Equal(t, "Thai", s.SelectCuisine())
	s.intn = func(n int) int { return 2 }
	assert.Equal(t, "Indian", s.SelectCuisine())
}

func TestSearchRestaurants(t *testing.T) {
	selector := NewRestaurantSelector()

	for _, cuisine := range cuisines {
		results := selector.SearchRestaurants(cuisine, "San Francisco", "Saturday", "7:00 PM", 4)
		assert.Len(t, results, 3, cuisine)
	}
}

func TestSearchRestaurantsFallback(t *testing.T) {
	selector := NewRestaurantSelector()

	results := selector.SearchRestaurants("Ethiopian", "Oakland", "Friday", "6:00 PM", 2)
	require.Len(t, results, 1)
	assert.Equal(t, "Local Ethiopian Restaurant", results[0].Name)
	assert.Equal(t, "Downtown Oakland", results[0].Address)
}

func TestSelectRestaurant_EmptyList(t *testing.T) {
	selector := NewRestaurantSelector()

	restaurant, err := selector.SelectRestaurant(nil)
	assert.Nil(t, restaurant)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestSelectRestaurant_AvoidsRecentRepeat(t *testing.T) {
	selector := NewRestaurantSelector()
	candidates := catalog["Thai"]

	first, err := selector.SelectRestaurant(candidates)
	require.NoError(t, err)
	second, err := selector.SelectRestaurant(candidates)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key(), second.Key(),
		"same restaurant twice in a row while unused candidates remain")
}

func TestSelectRestaurant_FallsBackWhenAllUsed(t *testing.T) {
	selector := NewRestaurantSelector()
	candidates := catalog["Chinese"]

	for range len(candidates) {
		_, err := selector.SelectRestaurant(candidates)
		require.NoError(t, err)
	}

	// Every candidate is now in the window; the first one comes back.
	restaurant, err := selector.SelectRestaurant(candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates[0].Key(), restaurant.Key())
}

func TestSelectRestaurant_WindowEvictsOldestFirst(t *testing.T) {
	s := &restaurantSelector{intn: func(n int) int { return 0 }}

	// Fill the window past capacity; the first entries must age out in
	// insertion order.
	var all []domain.RestaurantCandidate
	for i := range recentWindowSize + 2 {
		all = append(all, domain.RestaurantCandidate{
			Name:    fmt.Sprintf("Restaurant %d", i),
			Address: fmt.Sprintf("%d Main St", i),
		})
	}
	for i := range all {
		picked, err := s.SelectRestaurant(all[i : i+1])
		require.NoError(t, err)
		assert.Equal(t, all[i].Key(), picked.Key())
	}

	assert.Len(t, s.recent, recentWindowSize)
	assert.Equal(t, all[2].Key(), s.recent[0], "oldest surviving entry")

	// The two oldest entries were evicted, so they are selectable again.
	picked, err := s.SelectRestaurant(all[:1])
	require.NoError(t, err)
	assert.Equal(t, all[0].Key(), picked.Key())
}
