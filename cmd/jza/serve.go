package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza"
	httpAdapter "github.com/aretw0/jza/pkg/adapters/http"
	"github.com/aretw0/jza/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Loads the stored model and exposes it as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := observability.NewMetrics()
		a, err := newApp(cmd, true, jza.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			return err
		}
		defer a.close()

		addr := a.cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		st := a.engine.Stats()
		metrics.SetModelSize(st.States, st.Transitions)

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewHandler(a.engine, httpAdapter.WithLogger(a.logger), httpAdapter.WithMetrics(metrics)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("starting jza server", "addr", srv.Addr, "model", a.cfg.Model, "states", st.States)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			a.logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return err
				}
			}
			a.logger.Info("jza server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides config)")
}
