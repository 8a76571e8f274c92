package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/littlelemon/tablebook/internal/booking"
	"github.com/littlelemon/tablebook/internal/reservation"
)

type menuItemView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type menuCategoryView struct {
	Name  string         `json:"name"`
	Items []menuItemView `json:"items"`
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	var out []menuCategoryView
	for _, cat := range s.Menu.Categories() {
		view := menuCategoryView{Name: cat}
		for _, it := range s.Menu.InCategory(cat) {
			view.Items = append(view.Items, menuItemView{ID: it.ID, Name: it.Name, Description: it.Description, Price: it.Price.String()})
		}
		out = append(out, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	date, err := reservation.ParseDate(raw, s.now().Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	slots, err := s.Booking.ListAvailableTimes(r.Context(), date)
	if err != nil {
		s.log(r).Error("cannot list slots", slog.String("date", raw), slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "Could not load available times")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date.Format(booking.DateLayout),
		"slots": booking.Sanitize(slots),
	})
}

// handleReservation runs a fresh form controller over the posted values, so
// the API applies exactly the same rules as the interactive form.
func (s *Server) handleReservation(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var confirmed *reservation.Confirmation
	ctl := reservation.New(s.Booking,
		reservation.WithClock(s.now),
		reservation.WithLogger(s.log(r)),
		reservation.WithNavigate(func(c reservation.Confirmation) { confirmed = &c }),
	)

	ctx := r.Context()
	ctl.Mount(ctx)
	for _, f := range reservation.Fields {
		v, ok := payload[string(f)]
		if !ok {
			continue
		}
		if err := ctl.Set(ctx, f, formValue(v)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	ctl.Wait()
	if ctx.Err() != nil {
		s.abandoned(w, r, ctx.Err())
		return
	}

	err := ctl.Submit(ctx)
	view := ctl.Snapshot()
	switch {
	case err != nil && ctx.Err() != nil:
		s.abandoned(w, r, ctx.Err())
		return
	case errors.Is(err, reservation.ErrInvalid):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": view.Errors})
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, view.SubmitError)
		return
	case confirmed == nil:
		writeError(w, http.StatusInternalServerError, "reservation confirmed without a reference")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"reference":   confirmed.Reference.String(),
		"redirect":    s.confirmationURL(confirmed.Reference.String()),
		"reservation": confirmed.Reservation,
	})
}

// abandoned answers a request whose client went away before the form could
// be checked against fresh slots.
func (s *Server) abandoned(w http.ResponseWriter, r *http.Request, err error) {
	s.log(r).Info("reservation request abandoned", slog.String("error", err.Error()))
	writeError(w, statusClientClosedRequest, "Request cancelled")
}

func (s *Server) confirmationURL(ref string) string {
	return strings.TrimRight(s.BaseURL, "/") + confirmationPath + "?ref=" + ref
}

func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	var res booking.Reservation
	if err := decodeJSON(w, r, &res); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ok, err := s.Booking.SubmitReservation(r.Context(), res)
	switch {
	case errors.Is(err, booking.ErrSubmitRejected):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		s.log(r).Error("cannot submit booking", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "Booking service unavailable")
		return
	case !ok:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]bool{"ok": false})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func formValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
