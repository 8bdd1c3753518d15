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
	"github.com/m-mizutani/octosync/pkg/cli/config"
	"github.com/m-mizutani/octosync/pkg/controller/server"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/utils/errutil"
	"github.com/m-mizutani/octosync/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr        string
		waitAutoRun bool
		tick        time.Duration

		github   config.GitHub
		store    config.Store
		sync     config.Sync
		bigQuery config.BigQuery
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("OCTOSYNC_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "wait-auto-run",
			Usage:       "Run POST /api/sync/auto in the request instead of in the background",
			Sources:     cli.EnvVars("OCTOSYNC_WAIT_AUTO_RUN"),
			Destination: &waitAutoRun,
		},
		&cli.DurationFlag{
			Name:        "tick",
			Usage:       "Check whether an automatic run is due at this period (0 disables)",
			Sources:     cli.EnvVars("OCTOSYNC_TICK"),
			Destination: &tick,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			github.Flags(),
			store.Flags(),
			sync.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Duration("Tick", tick),
				slog.Any("GitHub", github),
				slog.Any("Store", &store),
				slog.Any("Sync", &sync),
				slog.Any("BigQuery", &bigQuery),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			uc, cleanup, err := buildUseCase(ctx, &github, &store, &sync, &bigQuery)
			if err != nil {
				return err
			}
			defer cleanup()

			s := server.New(uc, server.WithWaitAutoRun(waitAutoRun))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      5 * time.Minute,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			tickCtx, stopTick := context.WithCancel(ctx)
			defer stopTick()
			if tick > 0 {
				go runTicker(tickCtx, uc, tick)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)
				stopTick()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

// runTicker asks for an automatic run every period. The run gate decides whether it starts.
func runTicker(ctx context.Context, uc interfaces.UseCase, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.RunAutomatic(ctx, logging.CtxTime(ctx)); err != nil {
				errutil.HandleError(ctx, "scheduled automatic run failed", err)
			}
		}
	}
}
