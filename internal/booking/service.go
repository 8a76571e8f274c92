package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

var ErrSubmitRejected = errors.New("booking: reservation rejected")

type Reservation struct {
	Name            string
	Email           string
	Phone           string
	Date            time.Time
	Time            string
	Guests          int
	Occasion        string
	SpecialRequests string
}

// Service is the availability and booking backend the reservation form talks to.
// Implementations must be safe for concurrent use.
type Service interface {
	ListAvailableTimes(ctx context.Context, date time.Time) ([]string, error)
	SubmitReservation(ctx context.Context, r Reservation) (bool, error)
}

type reservationJSON struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	Occasion        string `json:"occasion,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

func (r Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(reservationJSON{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date.Format(DateLayout),
		Time:            r.Time,
		Guests:          r.Guests,
		Occasion:        r.Occasion,
		SpecialRequests: r.SpecialRequests,
	})
}

func (r *Reservation) UnmarshalJSON(b []byte) error {
	var raw reservationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("booking: invalid date %q (want YYYY-MM-DD)", raw.Date)
	}
	*r = Reservation{
		Name:            raw.Name,
		Email:           raw.Email,
		Phone:           raw.Phone,
		Date:            d,
		Time:            raw.Time,
		Guests:          raw.Guests,
		Occasion:        raw.Occasion,
		SpecialRequests: raw.SpecialRequests,
	}
	return nil
}
