package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(dinner *DinnerController, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /dinners", dinner.CreateDinner)
	mux.HandleFunc("GET /dinners/{eventID}", dinner.GetDinner)
	mux.HandleFunc("POST /dinners/{eventID}/rsvps", dinner.RSVP)
	mux.HandleFunc("POST /rsvps", dinner.RSVPLatest)

	mux.HandleFunc("GET /status", dinner.Status)
	mux.HandleFunc("GET /health", dinner.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return mux
}
