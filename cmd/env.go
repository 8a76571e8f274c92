package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/littlelemon/tablebook/internal/booking"
	"github.com/littlelemon/tablebook/internal/config"
	"github.com/littlelemon/tablebook/internal/logging"
	"github.com/littlelemon/tablebook/internal/reservation"
)

// loadEnv reads .env when present, then the process environment.
func loadEnv(stderr io.Writer) (config.Config, *slog.Logger, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logging.New(stderr, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, log, nil
}

// bookingService picks the remote client when BOOKING_URL is set and the
// in-memory mock otherwise.
func bookingService(cfg config.Config, log *slog.Logger) booking.Service {
	if cfg.BookingURL != "" {
		log.Info("using remote booking service", slog.String("url", cfg.BookingURL))
		return booking.NewClient(cfg.BookingURL, nil)
	}
	return booking.NewMock(cfg.BookingLatency, log)
}

func parseDateFlag(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	d, err := reservation.ParseDate(raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("--date must be YYYY-MM-DD")
	}
	return d, nil
}
