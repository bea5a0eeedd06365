// Package reservation provides the HTTP client for the external
// reservation-automation service that performs the actual restaurant
// booking.
package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dinnerplanner/config"
	"dinnerplanner/internal/domain"
)

type httpExecutor struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPExecutor returns a BookingExecutor that POSTs reservations to the
// automation service. A nil client gets a generous timeout because the
// browser-automation flow behind the service can take tens of seconds.
func NewHTTPExecutor(client *http.Client, cfg config.ReservationConfig) domain.BookingExecutor {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &httpExecutor{
		client:  client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

func (e *httpExecutor) Book(ctx context.Context, bookingReq domain.BookingRequest) (*domain.BookingResult, error) {
	body, err := json.Marshal(bookingReq)
	if err != nil {
		return nil, fmt.Errorf("encode booking request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/reservations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call reservation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reservation service returned status: %d", resp.StatusCode)
	}

	var result domain.BookingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode reservation response: %w", err)
	}
	return &result, nil
}
