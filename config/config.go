package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string

	// DataFile is the JSON file backing the event store.
	DataFile string
	// Location is the default dinner location when a request has none.
	Location string
	// MinConfirmations is the default confirmation threshold.
	MinConfirmations int
	// BookingWorkers sizes the pool running booking tasks.
	BookingWorkers int

	Email       EmailConfig
	Reservation ReservationConfig
}

// EmailConfig configures the outbound mailer.
type EmailConfig struct {
	Provider           string // "ses" or "noop"
	FromAddress        string
	FromName           string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// ReservationConfig configures the external reservation-automation service.
type ReservationConfig struct {
	BaseURL string
	APIKey  string
}

// Load loads configuration from environment variables. Outside production it
// first attempts to load a .env file; a missing .env is not an error because
// production relies on system environment variables.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:      env,
		Port:             envOr("PORT", "8080"),
		DataFile:         envOr("DATA_FILE", "dinner_events.json"),
		Location:         envOr("LOCATION", "San Francisco"),
		MinConfirmations: envIntOr("MIN_CONFIRMATIONS", 4),
		BookingWorkers:   envIntOr("BOOKING_WORKERS", 2),
		Email: EmailConfig{
			Provider:           envOr("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           envOr("EMAIL_FROM_NAME", "Dinner Planner"),
			SESRegion:          envOr("AWS_SES_REGION", "us-east-1"),
			SESAccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		},
		Reservation: ReservationConfig{
			BaseURL: os.Getenv("RESERVATION_API_URL"),
			APIKey:  os.Getenv("RESERVATION_API_KEY"),
		},
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}
