package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/littlelemon/tablebook/internal/booking"
	"github.com/littlelemon/tablebook/internal/order"
)

const (
	maxBodyBytes     = 1 << 20
	confirmationPath = "/booking-confirmed"

	// nginx's code for a client that closed the connection first.
	statusClientClosedRequest = 499
)

// Server exposes the reservation form, booking service and cart as a JSON API.
type Server struct {
	Booking booking.Service
	Menu    order.Menu
	Carts   *CartStore
	Logger  *slog.Logger
	// BaseURL prefixes the confirmation redirect. Empty means a relative path.
	BaseURL string
	// Now is the clock used for date validation. Defaults to time.Now.
	Now func() time.Time
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get(confirmationPath, s.handleConfirmed)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.NoCache)
		r.Get("/menu", s.handleMenu)
		r.Get("/slots", s.handleSlots)
		r.Post("/reservations", s.handleReservation)
		r.Post("/bookings", s.handleBooking)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleCartGet)
			r.Delete("/", s.handleCartClear)
			r.Post("/items", s.handleCartAdd)
			r.Patch("/items/{id}", s.handleCartUpdate)
			r.Delete("/items/{id}", s.handleCartRemove)
			r.Put("/type", s.handleCartType)
		})
	})
	return r
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

type ctxKeyLogger struct{}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		log := s.logger().With(slog.String("request_id", reqID))

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), ctxKeyLogger{}, log)))
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) log(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(ctxKeyLogger{}).(*slog.Logger); ok {
		return l
	}
	return s.logger()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// Start serves h on addr until ctx is cancelled.
func Start(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
