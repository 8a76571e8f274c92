package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/littlelemon/tablebook/internal/order"
	"github.com/littlelemon/tablebook/internal/web"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the reservation and ordering JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := cfg.RequireCookieKeys(); err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			ws := &web.Server{
				Booking: bookingService(cfg, log),
				Menu:    order.DefaultMenu(),
				Carts:   web.NewCartStore(cfg.CookieHashKey, cfg.CookieBlockKey),
				Logger:  log,
				BaseURL: cfg.BaseURL,
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}
