package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/littlelemon/tablebook/internal/booking"
)

func newSlotsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List available reservation times for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d, err := parseDateFlag(date, time.Now())
			if err != nil {
				return err
			}
			slots, err := bookingService(cfg, log).ListAvailableTimes(cmd.Context(), d)
			if err != nil {
				return fmt.Errorf("list slots: %w", err)
			}
			slots = booking.Sanitize(slots)
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintf(out, "%s: no times available\n", d.Format(booking.DateLayout))
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", d.Format(booking.DateLayout), strings.Join(slots, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}
