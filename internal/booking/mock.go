package booking

import (
	"context"
	"io"
	"log/slog"
	"time"
)

const DefaultLatency = 100 * time.Millisecond

var baseSlots = []string{
	"17:00", "17:30",
	"18:00", "18:30",
	"19:00", "19:30",
	"20:00", "20:30",
	"21:00",
}

// Mock simulates the booking backend in memory. The zero value is usable
// and answers without delay.
type Mock struct {
	Latency time.Duration
	// SubmitErr, when set, is returned by every SubmitReservation call.
	SubmitErr error
	Logger    *slog.Logger
}

func NewMock(latency time.Duration, logger *slog.Logger) *Mock {
	return &Mock{Latency: latency, Logger: logger}
}

// ListAvailableTimes returns the first 5 + weekday%4 evening slots.
func (m *Mock) ListAvailableTimes(ctx context.Context, date time.Time) ([]string, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	n := 5 + int(date.Weekday())%4
	out := make([]string, n)
	copy(out, baseSlots[:n])
	return out, nil
}

func (m *Mock) SubmitReservation(ctx context.Context, r Reservation) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	log := m.log().With(
		slog.String("date", r.Date.Format(DateLayout)),
		slog.String("time", r.Time),
		slog.Int("guests", r.Guests),
	)
	if m.SubmitErr != nil {
		log.Warn("mock booking rejected", slog.String("error", m.SubmitErr.Error()))
		return false, m.SubmitErr
	}
	log.Info("mock booking accepted")
	return true, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Mock) log() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m.Logger
}
