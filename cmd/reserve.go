package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/littlelemon/tablebook/internal/booking"
	"github.com/littlelemon/tablebook/internal/reservation"
)

func newReserveCmd() *cobra.Command {
	var (
		name     string
		email    string
		phone    string
		date     string
		times    []string
		guests   int
		occasion string
		requests string
		fail     bool
	)

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Fill in and submit the reservation form",
		Long: "Fill in and submit the reservation form.\n\n" +
			"The form is validated exactly as the website does it. --time takes one or\n" +
			"more preferred times; the first one still available is booked. Without it\n" +
			"the earliest available time for the date is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			svc := bookingService(cfg, log)
			if fail {
				svc = &booking.Mock{
					Latency:   cfg.BookingLatency,
					SubmitErr: errors.New("simulated booking failure"),
					Logger:    log,
				}
			}

			out := cmd.OutOrStdout()
			ctl := reservation.New(svc,
				reservation.WithLogger(log),
				reservation.WithNavigate(func(c reservation.Confirmation) {
					fmt.Fprintf(out, "Reservation confirmed (ref %s)\n", c.Reference)
				}),
			)

			ctx := cmd.Context()
			fields := []struct {
				f reservation.Field
				v string
			}{
				{reservation.Name, name},
				{reservation.Email, email},
				{reservation.Phone, phone},
				{reservation.Date, date},
				{reservation.Guests, strconv.Itoa(guests)},
				{reservation.Occasion, occasion},
				{reservation.SpecialRequests, requests},
			}
			for _, fv := range fields {
				if err := ctl.Set(ctx, fv.f, fv.v); err != nil {
					return err
				}
			}
			ctl.Wait()

			slot, ok := booking.Choose(times, ctl.Snapshot().Slots)
			if !ok && len(times) > 0 {
				slot = times[0]
			}
			if err := ctl.Set(ctx, reservation.Time, slot); err != nil {
				return err
			}

			err = ctl.Submit(ctx)
			view := ctl.Snapshot()
			switch {
			case errors.Is(err, reservation.ErrInvalid):
				printFormErrors(out, view.Errors)
				return err
			case err != nil:
				fmt.Fprintln(out, view.SubmitError)
				return err
			}
			res := view.Confirmation.Reservation
			fmt.Fprintf(out, "%s, %s at %s for %d\n", res.Name, res.Date.Format("Mon Jan 2 2006"), res.Time, res.Guests)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "guest name")
	f.StringVar(&email, "email", "", "contact email")
	f.StringVar(&phone, "phone", "", "contact phone")
	f.StringVar(&date, "date", "", "date as YYYY-MM-DD")
	f.StringSliceVar(&times, "time", nil, "preferred times as HH:MM, in order (default earliest available)")
	f.IntVar(&guests, "guests", 2, "party size (1-8)")
	f.StringVar(&occasion, "occasion", "none", "occasion")
	f.StringVar(&requests, "requests", "", "special requests")
	f.BoolVar(&fail, "fail", false, "use a mock booking service that rejects every submission")
	return cmd
}

func printFormErrors(w io.Writer, errs reservation.Errors) {
	for _, f := range reservation.Fields {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(w, "  %s: %s\n", f, msg)
		}
	}
}
