package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dinnerplanner/config"
	emailadapter "dinnerplanner/internal/adapters/email"
	"dinnerplanner/internal/adapters/reservation"
	httpdelivery "dinnerplanner/internal/delivery/http"
	"dinnerplanner/internal/delivery/http/middleware"
	"dinnerplanner/internal/metrics"
	"dinnerplanner/internal/repository/file"
	"dinnerplanner/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	store, err := file.NewEventStore(cfg.DataFile)
	if err != nil {
		logger.Error("open event store", "file", cfg.DataFile, "err", err)
		return
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	tracker := services.NewParticipantTracker(store, logger)
	selector := services.NewRestaurantSelector()
	executor := reservation.NewHTTPExecutor(nil, cfg.Reservation)
	mailer := emailadapter.NewMailer(cfg.Email, logger)
	notifier := services.NewNotifier(mailer, emailadapter.NewTemplateRenderer(), logger)

	coordinator := services.NewDinnerCoordinator(tracker, selector, executor, notifier, logger, m,
		services.CoordinatorOptions{Workers: cfg.BookingWorkers})
	defer coordinator.Stop()

	controller := httpdelivery.NewDinnerController(logger, coordinator, tracker, cfg.Location, cfg.MinConfirmations)
	mux := httpdelivery.NewRouter(controller, registry)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.Logging(logger, mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("dinner planner listening",
			"port", cfg.Port,
			"data_file", cfg.DataFile,
			"min_confirmations", cfg.MinConfirmations,
			"location", cfg.Location,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
