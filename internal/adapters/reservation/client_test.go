package reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinnerplanner/config"
	"dinnerplanner/internal/domain"
)

func TestBook(t *testing.T) {
	var gotAuth string
	var gotReq domain.BookingRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/reservations", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(domain.BookingResult{
			Success:            true,
			ConfirmationNumber: "R-42",
			RestaurantName:     gotReq.Restaurant.Name,
			Date:               gotReq.Date,
			Time:               gotReq.Time,
			PartySize:          gotReq.PartySize,
		})
	}))
	defer server.Close()

	executor := NewHTTPExecutor(server.Client(), config.ReservationConfig{
		BaseURL: server.URL,
		APIKey:  "secret",
	})

	result, err := executor.Book(context.Background(), domain.BookingRequest{
		Restaurant: domain.RestaurantCandidate{Name: "Dragon Palace", Address: "321 Chinatown"},
		PartySize:  4,
		Date:       "January 17, 2026",
		Time:       "7:00 PM",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "R-42", result.ConfirmationNumber)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "Dragon Palace", gotReq.Restaurant.Name)
	assert.Equal(t, 4, gotReq.PartySize)
}

func TestBook_DeclinedReservation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.BookingResult{
			Success: false,
			Error:   "no availability for that time",
		})
	}))
	defer server.Close()

	executor := NewHTTPExecutor(server.Client(), config.ReservationConfig{BaseURL: server.URL})

	result, err := executor.Book(context.Background(), domain.BookingRequest{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "no availability for that time", result.Error)
}

func TestBook_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	executor := NewHTTPExecutor(server.Client(), config.ReservationConfig{BaseURL: server.URL})

	_, err := executor.Book(context.Background(), domain.BookingRequest{})
	assert.ErrorContains(t, err, "status: 502")
}
