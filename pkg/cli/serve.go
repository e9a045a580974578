package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/cli/config"
	"github.com/m-mizutani/branchsite/pkg/controller/server"
	"github.com/m-mizutani/branchsite/pkg/infra/metrics"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

func serveCommand() *cli.Command {
	var (
		addr string

		cfg     siteConfig
		webhook config.Webhook
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("BRANCHSITE_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the poll loop with the webhook, status and metrics server",
		Flags: slice.Flatten(
			serveFlags,
			cfg.Flags(),
			webhook.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Site", &cfg.site),
				slog.Any("Remote", cfg.remote),
				slog.Any("Poll", &cfg.poll),
				slog.Any("Registry", &cfg.registry),
				slog.Any("BigQuery", &cfg.bigQuery),
				slog.Any("Sentry", &cfg.sentry),
				slog.Any("Webhook", webhook),
			)

			if err := cfg.sentry.Configure(ctx); err != nil {
				return err
			}
			defer cfg.sentry.Flush()

			recorder := metrics.New()
			uc, err := cfg.newUseCase(ctx, recorder)
			if err != nil {
				return err
			}

			s := server.New(uc,
				server.WithWebhookSecret(webhook.Secret()),
				server.WithMetricsHandler(recorder.Handler()),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			loopCtx, stopLoop := context.WithCancel(ctx)
			defer stopLoop()
			loopDone := make(chan error, 1)
			go func() {
				loopDone <- uc.Run(loopCtx)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			var runErr error
			select {
			case err := <-serverErr:
				runErr = err

			case err := <-loopDone:
				loopDone <- err
				runErr = err

			case sig := <-quit:
				logging.Default().Info("shutting down", "signal", sig)
			}

			// Running transitions complete before the loop returns.
			stopLoop()
			if err := <-loopDone; err != nil && runErr == nil {
				runErr = err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
				runErr = goerr.Wrap(err, "failed to shutdown server")
			}

			return runErr
		},
	}
}
